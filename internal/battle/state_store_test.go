package battle

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/streakarena/internal/model"
	"github.com/udisondev/streakarena/internal/testutil"
)

func TestStateStore_OpenNotFound(t *testing.T) {
	store := NewStateStore(testutil.NewMockRepository())

	_, err := store.Open(context.Background(), 42)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCharacterNotFound)

	// lock released after failure
	repo := testutil.NewMockRepository(testutil.NewSnapshot(42, "Late"))
	store.repo = repo
	sess, err := store.Open(context.Background(), 42)
	require.NoError(t, err)
	sess.Close()
}

func TestStateStore_OpenLoadError(t *testing.T) {
	repo := testutil.NewMockRepository()
	repo.LoadErr = testutil.ErrSimulated
	store := NewStateStore(repo)

	_, err := store.Open(context.Background(), 1)
	assert.ErrorIs(t, err, testutil.ErrSimulated)
	assert.False(t, errors.Is(err, ErrCharacterNotFound))
}

func TestStateStore_InvalidStateReset(t *testing.T) {
	snap := testutil.NewSnapshot(1, "Corrupt")
	snap.State = model.EncounterState{ComboCount: -4, SecondWindTurnsLeft: 9}
	store := NewStateStore(testutil.NewMockRepository(snap))

	sess, err := store.Open(context.Background(), 1)
	require.NoError(t, err)
	defer sess.Close()

	assert.Equal(t, model.EncounterState{}, sess.Snapshot(1).State)
}

func TestSession_Flush(t *testing.T) {
	repo := testutil.NewMockRepository(testutil.NewSnapshot(1, "Hero"))
	store := NewStateStore(repo)

	sess, err := store.Open(context.Background(), 1)
	require.NoError(t, err)

	snap := sess.Snapshot(1)
	wb := model.Writeback{
		CharacterID: 1,
		CurrentHP:   10,
		MaxHP:       snap.MaxHP,
		Level:       snap.Level,
		Experience:  snap.Exp(),
		Currency:    snap.Coins(),
		Streak:      4,
	}
	require.NoError(t, sess.Flush(context.Background(), wb))
	assert.Error(t, sess.Flush(context.Background(), wb))

	got := repo.Get(1)
	assert.Equal(t, int64(10), got.CurrentHP)
	assert.Equal(t, int64(4), got.Streak)
	assert.Equal(t, 1, repo.Saves())
}

func TestSession_FlushForeignCharacter(t *testing.T) {
	repo := testutil.NewMockRepository(testutil.NewSnapshot(1, "Hero"), testutil.NewSnapshot(2, "Other"))
	store := NewStateStore(repo)

	sess, err := store.Open(context.Background(), 1)
	require.NoError(t, err)

	err = sess.Flush(context.Background(), model.Writeback{CharacterID: 2})
	require.Error(t, err)
	assert.Equal(t, 0, repo.Saves())
}

func TestSession_FlushError(t *testing.T) {
	repo := testutil.NewMockRepository(testutil.NewSnapshot(1, "Hero"))
	repo.SaveErr = testutil.ErrSimulated
	store := NewStateStore(repo)

	sess, err := store.Open(context.Background(), 1)
	require.NoError(t, err)

	err = sess.Flush(context.Background(), model.Writeback{CharacterID: 1})
	assert.ErrorIs(t, err, testutil.ErrSimulated)

	// session closed, lock free again
	again, err := store.Open(context.Background(), 1)
	require.NoError(t, err)
	again.Close()
}
