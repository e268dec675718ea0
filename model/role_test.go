package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComposition_Validate(t *testing.T) {
	assert.NoError(t, DefaultComposition().Validate())
	assert.Error(t, Composition{}.Validate())
	assert.Error(t, Composition{RoleTank: 0}.Validate())
	assert.Error(t, Composition{RoleTank: 1, RoleDPS: -3}.Validate())
}

func TestComposition_Size(t *testing.T) {
	assert.Equal(t, 5, DefaultComposition().Size())
	assert.Equal(t, 2, Composition{RoleTank: 2}.Size())
}

func TestCounts_Satisfies(t *testing.T) {
	composition := DefaultComposition()

	assert.True(t, Counts{RoleTank: 1, RoleHealer: 1, RoleDPS: 3}.Satisfies(composition))
	assert.True(t, Counts{RoleTank: 10, RoleHealer: 10, RoleDPS: 30}.Satisfies(composition))
	assert.False(t, Counts{RoleTank: 0, RoleHealer: 1, RoleDPS: 3}.Satisfies(composition))
	assert.False(t, Counts{RoleTank: 1, RoleHealer: 1, RoleDPS: 2}.Satisfies(composition))
	// Missing roles read as zero.
	assert.False(t, Counts{}.Satisfies(composition))
}

func TestCounts_Withdraw(t *testing.T) {
	counts := Counts{RoleTank: 2, RoleHealer: 3, RoleDPS: 7}
	counts.Withdraw(DefaultComposition())
	assert.Equal(t, Counts{RoleTank: 1, RoleHealer: 2, RoleDPS: 4}, counts)
}

func TestCounts_Clone(t *testing.T) {
	counts := Counts{RoleTank: 1}
	clone := counts.Clone()
	clone[RoleTank] = 9
	assert.Equal(t, 1, counts[RoleTank])
}

func TestTimeBounds_Validate(t *testing.T) {
	assert.NoError(t, TimeBounds{Min: 0, Max: 0}.Validate())
	assert.NoError(t, TimeBounds{Min: 1, Max: 15}.Validate())
	assert.Error(t, TimeBounds{Min: -1, Max: 3}.Validate())
	assert.Error(t, TimeBounds{Min: 4, Max: 3}.Validate())
	assert.Error(t, TimeBounds{Min: 0, Max: 16}.Validate())
}

func TestTimeBounds_Span(t *testing.T) {
	assert.Equal(t, 1, TimeBounds{Min: 3, Max: 3}.Span())
	assert.Equal(t, 5, TimeBounds{Min: 1, Max: 5}.Span())
}
