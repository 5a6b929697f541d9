package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/streakarena/internal/model"
)

// EncounterStore реализует battle.Repository поверх PostgreSQL.
// Результат боя сохраняется одной транзакцией для всех участников.
type EncounterStore struct {
	pool     *pgxpool.Pool
	charRepo *CharacterRepository
}

// NewEncounterStore создаёт новый store.
func NewEncounterStore(pool *pgxpool.Pool, charRepo *CharacterRepository) *EncounterStore {
	return &EncounterStore{pool: pool, charRepo: charRepo}
}

// LoadCharacter returns the character snapshot or nil, nil if missing.
func (s *EncounterStore) LoadCharacter(ctx context.Context, id int64) (*model.CharacterSnapshot, error) {
	return s.charRepo.LoadCharacter(ctx, id)
}

// SaveEncounter saves every writeback in a single transaction.
// Ensures consistency: either all participants are saved or none.
func (s *EncounterStore) SaveEncounter(ctx context.Context, writebacks ...model.Writeback) error {
	if len(writebacks) == 0 {
		return nil
	}
	first := writebacks[0].CharacterID

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction for character %d: %w", first, err)
	}
	defer rollback(ctx, tx, first)

	for _, wb := range writebacks {
		if err := s.charRepo.UpdateTx(ctx, tx, wb); err != nil {
			return fmt.Errorf("saving character %d: %w", wb.CharacterID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction for character %d: %w", first, err)
	}

	slog.Debug("encounter saved",
		"characterID", first,
		"participants", len(writebacks))
	return nil
}

func rollback(ctx context.Context, tx pgx.Tx, characterID int64) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		slog.Error("rollback failed", "characterID", characterID, "error", err)
	}
}
