package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/streakarena/internal/model"
)

// CharacterRepository управляет персонажами арены в БД.
type CharacterRepository struct {
	db *pgxpool.Pool
}

// NewCharacterRepository создаёт новый CharacterRepository.
func NewCharacterRepository(db *pgxpool.Pool) *CharacterRepository {
	return &CharacterRepository{db: db}
}

// Create inserts a new character with its equipped items and returns its ID.
// CharacterID of snap is ignored.
func (r *CharacterRepository) Create(ctx context.Context, snap *model.CharacterSnapshot) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin transaction for character %q: %w", snap.Name, err)
	}
	defer rollback(ctx, tx, 0)

	var id int64
	err = tx.QueryRow(ctx, `
		INSERT INTO characters (name, level, current_hp, max_hp, attack, defense, speed,
		                        archetype, experience, currency, streak,
		                        combo_count, second_wind_active, second_wind_turns_left)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING character_id`,
		snap.Name, snap.Level, snap.CurrentHP, snap.MaxHP, snap.Attack, snap.Defense, snap.Speed,
		snap.Archetype.String(), toNumeric(snap.Experience), toNumeric(snap.Currency), snap.Streak,
		snap.State.ComboCount, snap.State.SecondWindActive, snap.State.SecondWindTurnsLeft,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting character %q: %w", snap.Name, err)
	}

	for _, itemID := range snap.EquippedItems {
		if _, err := tx.Exec(ctx,
			`INSERT INTO character_items (character_id, item_id) VALUES ($1, $2)
			 ON CONFLICT DO NOTHING`, id, itemID); err != nil {
			return 0, fmt.Errorf("equipping item %d on character %d: %w", itemID, id, err)
		}
	}
	if err := saveStatusEffectsTx(ctx, tx, id, snap.StatusEffects); err != nil {
		return 0, err
	}
	if err := saveBuffsTx(ctx, tx, id, snap.Buffs); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit transaction for character %q: %w", snap.Name, err)
	}
	return id, nil
}

// LoadCharacter загружает полный снимок персонажа по ID.
// Возвращает nil, nil если персонаж не найден (не ошибка).
func (r *CharacterRepository) LoadCharacter(ctx context.Context, characterID int64) (*model.CharacterSnapshot, error) {
	query := `
		SELECT character_id, name, level, current_hp, max_hp, attack, defense, speed,
		       archetype, experience, currency, streak,
		       combo_count, second_wind_active, second_wind_turns_left
		FROM characters
		WHERE character_id = $1
	`

	var (
		snap      model.CharacterSnapshot
		archetype string
		exp       pgtype.Numeric
		currency  pgtype.Numeric
	)
	err := r.db.QueryRow(ctx, query, characterID).Scan(
		&snap.CharacterID, &snap.Name, &snap.Level, &snap.CurrentHP, &snap.MaxHP,
		&snap.Attack, &snap.Defense, &snap.Speed,
		&archetype, &exp, &currency, &snap.Streak,
		&snap.State.ComboCount, &snap.State.SecondWindActive, &snap.State.SecondWindTurnsLeft,
	)
	if err == pgx.ErrNoRows {
		return nil, nil // NOT ERROR, just not found
	}
	if err != nil {
		return nil, fmt.Errorf("querying character %d: %w", characterID, err)
	}

	if snap.Archetype, err = model.ParseArchetype(archetype); err != nil {
		return nil, fmt.Errorf("character %d: %w", characterID, err)
	}
	if snap.Experience, err = fromNumeric(exp); err != nil {
		return nil, fmt.Errorf("character %d experience: %w", characterID, err)
	}
	if snap.Currency, err = fromNumeric(currency); err != nil {
		return nil, fmt.Errorf("character %d currency: %w", characterID, err)
	}

	if snap.StatusEffects, err = r.loadStatusEffects(ctx, characterID); err != nil {
		return nil, err
	}
	if snap.Buffs, err = r.loadBuffs(ctx, characterID); err != nil {
		return nil, err
	}
	if snap.EquippedItems, err = r.loadItems(ctx, characterID); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (r *CharacterRepository) loadStatusEffects(ctx context.Context, characterID int64) ([]model.StatusEffect, error) {
	rows, err := r.db.Query(ctx, `
		SELECT kind, magnitude, remaining_turns, source
		FROM character_status_effects
		WHERE character_id = $1
		ORDER BY position`, characterID)
	if err != nil {
		return nil, fmt.Errorf("querying status effects for character %d: %w", characterID, err)
	}
	defer rows.Close()

	var effects []model.StatusEffect
	for rows.Next() {
		var (
			e    model.StatusEffect
			kind string
		)
		if err := rows.Scan(&kind, &e.Magnitude, &e.RemainingTurns, &e.Source); err != nil {
			return nil, fmt.Errorf("scanning status effect: %w", err)
		}
		if e.Kind, err = model.ParseStatusKind(kind); err != nil {
			return nil, fmt.Errorf("character %d: %w", characterID, err)
		}
		effects = append(effects, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating status effects: %w", err)
	}
	return effects, nil
}

func (r *CharacterRepository) loadBuffs(ctx context.Context, characterID int64) ([]model.ActiveBuff, error) {
	rows, err := r.db.Query(ctx, `
		SELECT kind, magnitude, expires_at, source
		FROM character_buffs
		WHERE character_id = $1
		ORDER BY position`, characterID)
	if err != nil {
		return nil, fmt.Errorf("querying buffs for character %d: %w", characterID, err)
	}
	defer rows.Close()

	var buffs []model.ActiveBuff
	for rows.Next() {
		var (
			b    model.ActiveBuff
			kind string
		)
		if err := rows.Scan(&kind, &b.Magnitude, &b.ExpiresAt, &b.Source); err != nil {
			return nil, fmt.Errorf("scanning buff: %w", err)
		}
		if b.Kind, err = model.ParseBuffKind(kind); err != nil {
			return nil, fmt.Errorf("character %d: %w", characterID, err)
		}
		buffs = append(buffs, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating buffs: %w", err)
	}
	return buffs, nil
}

func (r *CharacterRepository) loadItems(ctx context.Context, characterID int64) ([]int32, error) {
	rows, err := r.db.Query(ctx,
		`SELECT item_id FROM character_items WHERE character_id = $1 ORDER BY item_id`, characterID)
	if err != nil {
		return nil, fmt.Errorf("querying items for character %d: %w", characterID, err)
	}
	items, err := pgx.CollectRows(rows, pgx.RowTo[int32])
	if err != nil {
		return nil, fmt.Errorf("collecting items for character %d: %w", characterID, err)
	}
	return items, nil
}

// UpdateTx сохраняет результат боя персонажа внутри транзакции.
func (r *CharacterRepository) UpdateTx(ctx context.Context, tx pgx.Tx, wb model.Writeback) error {
	tag, err := tx.Exec(ctx, `
		UPDATE characters
		SET current_hp = $2, max_hp = $3, level = $4, experience = $5, currency = $6,
		    streak = $7, combo_count = $8, second_wind_active = $9,
		    second_wind_turns_left = $10, updated_at = $11
		WHERE character_id = $1`,
		wb.CharacterID, wb.CurrentHP, wb.MaxHP, wb.Level,
		toNumeric(wb.Experience), toNumeric(wb.Currency), wb.Streak,
		wb.State.ComboCount, wb.State.SecondWindActive, wb.State.SecondWindTurnsLeft,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("updating character %d: %w", wb.CharacterID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("updating character %d: no rows affected", wb.CharacterID)
	}

	if err := saveStatusEffectsTx(ctx, tx, wb.CharacterID, wb.StatusEffects); err != nil {
		return err
	}
	return saveBuffsTx(ctx, tx, wb.CharacterID, wb.Buffs)
}

func saveStatusEffectsTx(ctx context.Context, tx pgx.Tx, characterID int64, effects []model.StatusEffect) error {
	if _, err := tx.Exec(ctx,
		`DELETE FROM character_status_effects WHERE character_id = $1`, characterID); err != nil {
		return fmt.Errorf("clearing status effects for character %d: %w", characterID, err)
	}
	if len(effects) == 0 {
		return nil
	}

	rows := make([][]any, 0, len(effects))
	for i, e := range effects {
		rows = append(rows, []any{characterID, int32(i), e.Kind.String(), e.Magnitude, e.RemainingTurns, e.Source})
	}
	_, err := tx.CopyFrom(ctx,
		pgx.Identifier{"character_status_effects"},
		[]string{"character_id", "position", "kind", "magnitude", "remaining_turns", "source"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("copying status effects for character %d: %w", characterID, err)
	}
	return nil
}

func saveBuffsTx(ctx context.Context, tx pgx.Tx, characterID int64, buffs []model.ActiveBuff) error {
	if _, err := tx.Exec(ctx,
		`DELETE FROM character_buffs WHERE character_id = $1`, characterID); err != nil {
		return fmt.Errorf("clearing buffs for character %d: %w", characterID, err)
	}
	if len(buffs) == 0 {
		return nil
	}

	rows := make([][]any, 0, len(buffs))
	for i, b := range buffs {
		rows = append(rows, []any{characterID, int32(i), b.Kind.String(), b.Magnitude, b.ExpiresAt, b.Source})
	}
	_, err := tx.CopyFrom(ctx,
		pgx.Identifier{"character_buffs"},
		[]string{"character_id", "position", "kind", "magnitude", "expires_at", "source"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("copying buffs for character %d: %w", characterID, err)
	}
	return nil
}
