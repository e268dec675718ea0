package meta

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandEnvExpr(t *testing.T) {
	t.Setenv("DUNGEON_INSTANCES", "4")
	t.Setenv("DUNGEON_EMPTY", "")

	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "no expression",
			input:    "instances: 3",
			expected: "instances: 3",
		},
		{
			name:     "simple expansion",
			input:    "instances: ${env.DUNGEON_INSTANCES}",
			expected: "instances: 4",
		},
		{
			name:     "unset variable expands to empty",
			input:    "value: ${env.DUNGEON_MISSING_FOR_SURE}!",
			expected: "value: !",
		},
		{
			name:     "multiple expressions",
			input:    "${env.DUNGEON_INSTANCES}-${env.DUNGEON_INSTANCES}",
			expected: "4-4",
		},
		{
			name:     "missing closing brace stays literal",
			input:    "value: ${env.DUNGEON_INSTANCES",
			expected: "value: ${env.DUNGEON_INSTANCES",
		},
		{
			name:     "invalid key stays literal",
			input:    "value: ${env.DUNGEON-INSTANCES}",
			expected: "value: ${env.DUNGEON-INSTANCES}",
		},
		{
			name:     "empty value",
			input:    "value: ${env.DUNGEON_EMPTY}end",
			expected: "value: end",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, expandEnvExpr(tc.input))
		})
	}
}
