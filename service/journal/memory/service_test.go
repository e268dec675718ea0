package memory

import (
	"context"
	"testing"
	"time"

	"github.com/MezMezMezMez/P2/service/dao"
	"github.com/MezMezMezMez/P2/service/journal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_SaveLoadDelete(t *testing.T) {
	srv := New()
	ctx := context.Background()

	record := &journal.RunRecord{
		ID:       "run-1",
		PartyID:  "party-1",
		Slot:     0,
		Duration: 3 * time.Second,
	}
	require.NoError(t, srv.Save(ctx, record))

	loaded, err := srv.Load(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, record, loaded)

	require.NoError(t, srv.Delete(ctx, "run-1"))
	_, err = srv.Load(ctx, "run-1")
	assert.ErrorIs(t, err, dao.ErrNotFound)
}

func TestService_Save_Invalid(t *testing.T) {
	srv := New()
	ctx := context.Background()

	assert.ErrorIs(t, srv.Save(ctx, nil), dao.ErrNilEntity)
	assert.ErrorIs(t, srv.Save(ctx, &journal.RunRecord{}), dao.ErrInvalidID)
}

func TestService_List_SlotFilter(t *testing.T) {
	srv := New()
	ctx := context.Background()
	for i, slot := range []int{0, 1, 1, 2} {
		require.NoError(t, srv.Save(ctx, &journal.RunRecord{
			ID:   string(rune('a' + i)),
			Slot: slot,
		}))
	}

	all, err := srv.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	slotOne, err := srv.List(ctx, dao.NewParameter("Slot", 1))
	require.NoError(t, err)
	assert.Len(t, slotOne, 2)
	for _, record := range slotOne {
		assert.Equal(t, 1, record.Slot)
	}

	none, err := srv.List(ctx, dao.NewParameter("Slot", 9))
	require.NoError(t, err)
	assert.Empty(t, none)
}
