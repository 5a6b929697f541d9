package db

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/streakarena/internal/model"
)

func newTestCharacter(name string) *model.CharacterSnapshot {
	huge, _ := new(big.Int).SetString("123456789012345678901234567890", 10)
	return &model.CharacterSnapshot{
		Name:          name,
		Level:         12,
		CurrentHP:     80,
		MaxHP:         120,
		Attack:        40,
		Defense:       25,
		Speed:         9,
		Archetype:     model.ArchetypeVenomancer,
		Experience:    big.NewInt(101_676),
		Currency:      huge,
		Streak:        4,
		State:         model.EncounterState{ComboCount: 3},
		StatusEffects: []model.StatusEffect{{Kind: model.StatusBurn, Magnitude: 7, RemainingTurns: 2, Source: "archetype"}},
		Buffs: []model.ActiveBuff{
			{Kind: model.BuffAttack, Magnitude: 5, ExpiresAt: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), Source: "potion"},
		},
		EquippedItems: []int32{2001, 3001},
	}
}

func TestCharacterRepository_CreateLoad(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := NewCharacterRepository(pool)

	want := newTestCharacter("Viper")
	id, err := repo.Create(ctx, want)
	require.NoError(t, err)

	got, err := repo.LoadCharacter(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, id, got.CharacterID)
	assert.Equal(t, want.Name, got.Name)
	assert.Equal(t, want.Archetype, got.Archetype)
	assert.Equal(t, 0, want.Currency.Cmp(got.Currency))
	assert.Equal(t, 0, want.Experience.Cmp(got.Experience))
	assert.Equal(t, want.State, got.State)
	assert.Equal(t, want.StatusEffects, got.StatusEffects)
	require.Len(t, got.Buffs, 1)
	assert.True(t, want.Buffs[0].ExpiresAt.Equal(got.Buffs[0].ExpiresAt))
	assert.Equal(t, want.EquippedItems, got.EquippedItems)
}

func TestCharacterRepository_LoadMissing(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewCharacterRepository(pool)

	got, err := repo.LoadCharacter(context.Background(), 987654)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestEncounterStore_SaveEncounter(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	charRepo := NewCharacterRepository(pool)
	store := NewEncounterStore(pool, charRepo)

	aID, err := charRepo.Create(ctx, newTestCharacter("Alpha"))
	require.NoError(t, err)
	bID, err := charRepo.Create(ctx, newTestCharacter("Beta"))
	require.NoError(t, err)

	err = store.SaveEncounter(ctx,
		model.Writeback{CharacterID: aID, CurrentHP: 10, MaxHP: 120, Level: 13,
			Experience: big.NewInt(150_000), Currency: big.NewInt(1000), Streak: 5,
			State: model.EncounterState{SecondWindActive: true, SecondWindTurnsLeft: 2}},
		model.Writeback{CharacterID: bID, CurrentHP: 0, MaxHP: 120, Level: 12,
			Experience: big.NewInt(101_676), Currency: big.NewInt(3), Streak: 0},
	)
	require.NoError(t, err)

	a, err := store.LoadCharacter(ctx, aID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), a.CurrentHP)
	assert.Equal(t, int32(13), a.Level)
	assert.Equal(t, int64(5), a.Streak)
	assert.Equal(t, "1000", a.Currency.String())
	assert.True(t, a.State.SecondWindActive)
	assert.Empty(t, a.StatusEffects)
	assert.Empty(t, a.Buffs)

	b, err := store.LoadCharacter(ctx, bID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), b.CurrentHP)
	assert.Equal(t, "3", b.Currency.String())
}

func TestEncounterStore_SaveEncounterAtomic(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	charRepo := NewCharacterRepository(pool)
	store := NewEncounterStore(pool, charRepo)

	id, err := charRepo.Create(ctx, newTestCharacter("Gamma"))
	require.NoError(t, err)

	err = store.SaveEncounter(ctx,
		model.Writeback{CharacterID: id, CurrentHP: 1, MaxHP: 120, Level: 12,
			Experience: big.NewInt(0), Currency: big.NewInt(0), Streak: 99},
		model.Writeback{CharacterID: id + 1000, MaxHP: 1, Level: 1,
			Experience: big.NewInt(0), Currency: big.NewInt(0)},
	)
	require.Error(t, err)

	got, err := store.LoadCharacter(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(4), got.Streak)
	assert.Equal(t, int64(80), got.CurrentHP)
}
