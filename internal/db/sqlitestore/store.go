// Package sqlitestore provides a SQLite-backed character store for local
// runs and simulations.
package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"path/filepath"
	"strings"
	"time"

	"github.com/pressly/goose/v3"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/udisondev/streakarena/internal/db/sqlitestore/migrations"
	"github.com/udisondev/streakarena/internal/model"
)

// ErrDuplicateName is returned by Create when the name is taken.
var ErrDuplicateName = errors.New("character name already exists")

// Store persists characters in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite store and applies embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) +
		"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := migrate(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

func migrate(ctx context.Context, sqlDB *sql.DB) error {
	provider, err := goose.NewProvider(goose.DialectSQLite3, sqlDB, migrations.FS)
	if err != nil {
		return fmt.Errorf("creating goose provider: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return err
	}
	for _, r := range results {
		slog.Debug("sqlite migration applied", "source", r.Source.Path, "duration", r.Duration)
	}
	return nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Create inserts a new character and returns its ID.
// CharacterID of snap is ignored.
func (s *Store) Create(ctx context.Context, snap *model.CharacterSnapshot) (int64, error) {
	name := strings.TrimSpace(snap.Name)
	if name == "" {
		return 0, fmt.Errorf("character name is required")
	}
	if snap.MaxHP <= 0 {
		return 0, fmt.Errorf("max hp must be greater than zero")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction for character %q: %w", name, err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO characters (name, level, current_hp, max_hp, attack, defense, speed,
		                         archetype, experience, currency, streak,
		                         combo_count, second_wind_active, second_wind_turns_left, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		name, snap.Level, snap.CurrentHP, snap.MaxHP, snap.Attack, snap.Defense, snap.Speed,
		snap.Archetype.String(), snap.Exp().String(), snap.Coins().String(), snap.Streak,
		snap.State.ComboCount, snap.State.SecondWindActive, snap.State.SecondWindTurnsLeft,
		toMillis(time.Now()),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("character %q: %w", name, ErrDuplicateName)
		}
		return 0, fmt.Errorf("inserting character %q: %w", name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading id of character %q: %w", name, err)
	}

	for _, itemID := range snap.EquippedItems {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO character_items (character_id, item_id) VALUES (?, ?)`,
			id, itemID); err != nil {
			return 0, fmt.Errorf("equipping item %d on character %d: %w", itemID, id, err)
		}
	}
	if err := saveStatusEffects(ctx, tx, id, snap.StatusEffects); err != nil {
		return 0, err
	}
	if err := saveBuffs(ctx, tx, id, snap.Buffs); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit character %q: %w", name, err)
	}
	return id, nil
}

// LoadCharacter returns the character snapshot.
// Returns nil, nil if the character does not exist.
func (s *Store) LoadCharacter(ctx context.Context, id int64) (*model.CharacterSnapshot, error) {
	var (
		snap      model.CharacterSnapshot
		archetype string
		exp       string
		currency  string
	)
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT character_id, name, level, current_hp, max_hp, attack, defense, speed,
		        archetype, experience, currency, streak,
		        combo_count, second_wind_active, second_wind_turns_left
		 FROM characters WHERE character_id = ?`, id,
	).Scan(
		&snap.CharacterID, &snap.Name, &snap.Level, &snap.CurrentHP, &snap.MaxHP,
		&snap.Attack, &snap.Defense, &snap.Speed,
		&archetype, &exp, &currency, &snap.Streak,
		&snap.State.ComboCount, &snap.State.SecondWindActive, &snap.State.SecondWindTurnsLeft,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying character %d: %w", id, err)
	}

	if snap.Archetype, err = model.ParseArchetype(archetype); err != nil {
		return nil, fmt.Errorf("character %d: %w", id, err)
	}
	if snap.Experience, err = parseAmount(exp); err != nil {
		return nil, fmt.Errorf("character %d experience: %w", id, err)
	}
	if snap.Currency, err = parseAmount(currency); err != nil {
		return nil, fmt.Errorf("character %d currency: %w", id, err)
	}
	if snap.StatusEffects, err = s.loadStatusEffects(ctx, id); err != nil {
		return nil, err
	}
	if snap.Buffs, err = s.loadBuffs(ctx, id); err != nil {
		return nil, err
	}
	if snap.EquippedItems, err = s.loadItems(ctx, id); err != nil {
		return nil, err
	}
	return &snap, nil
}

// SaveEncounter saves every writeback in a single transaction.
func (s *Store) SaveEncounter(ctx context.Context, writebacks ...model.Writeback) error {
	if len(writebacks) == 0 {
		return nil
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin encounter transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := toMillis(time.Now())
	for _, wb := range writebacks {
		res, err := tx.ExecContext(ctx,
			`UPDATE characters
			 SET current_hp = ?, max_hp = ?, level = ?, experience = ?, currency = ?,
			     streak = ?, combo_count = ?, second_wind_active = ?,
			     second_wind_turns_left = ?, updated_at = ?
			 WHERE character_id = ?`,
			wb.CurrentHP, wb.MaxHP, wb.Level, amount(wb.Experience), amount(wb.Currency),
			wb.Streak, wb.State.ComboCount, wb.State.SecondWindActive,
			wb.State.SecondWindTurnsLeft, now, wb.CharacterID,
		)
		if err != nil {
			return fmt.Errorf("updating character %d: %w", wb.CharacterID, err)
		}
		if n, err := res.RowsAffected(); err != nil || n == 0 {
			return fmt.Errorf("updating character %d: no rows affected", wb.CharacterID)
		}
		if err := saveStatusEffects(ctx, tx, wb.CharacterID, wb.StatusEffects); err != nil {
			return err
		}
		if err := saveBuffs(ctx, tx, wb.CharacterID, wb.Buffs); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit encounter: %w", err)
	}
	return nil
}

func (s *Store) loadStatusEffects(ctx context.Context, id int64) ([]model.StatusEffect, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT kind, magnitude, remaining_turns, source
		 FROM character_status_effects WHERE character_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("querying status effects for character %d: %w", id, err)
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
			return nil, fmt.Errorf("character %d: %w", id, err)
		}
		effects = append(effects, e)
	}
	return effects, rows.Err()
}

func (s *Store) loadBuffs(ctx context.Context, id int64) ([]model.ActiveBuff, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT kind, magnitude, expires_at, source
		 FROM character_buffs WHERE character_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("querying buffs for character %d: %w", id, err)
	}
	defer rows.Close()

	var buffs []model.ActiveBuff
	for rows.Next() {
		var (
			b       model.ActiveBuff
			kind    string
			expires int64
		)
		if err := rows.Scan(&kind, &b.Magnitude, &expires, &b.Source); err != nil {
			return nil, fmt.Errorf("scanning buff: %w", err)
		}
		if b.Kind, err = model.ParseBuffKind(kind); err != nil {
			return nil, fmt.Errorf("character %d: %w", id, err)
		}
		b.ExpiresAt = fromMillis(expires)
		buffs = append(buffs, b)
	}
	return buffs, rows.Err()
}

func (s *Store) loadItems(ctx context.Context, id int64) ([]int32, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT item_id FROM character_items WHERE character_id = ? ORDER BY item_id`, id)
	if err != nil {
		return nil, fmt.Errorf("querying items for character %d: %w", id, err)
	}
	defer rows.Close()

	var items []int32
	for rows.Next() {
		var item int32
		if err := rows.Scan(&item); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func saveStatusEffects(ctx context.Context, tx *sql.Tx, id int64, effects []model.StatusEffect) error {
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM character_status_effects WHERE character_id = ?`, id); err != nil {
		return fmt.Errorf("clearing status effects for character %d: %w", id, err)
	}
	for i, e := range effects {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO character_status_effects (character_id, position, kind, magnitude, remaining_turns, source)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			id, i, e.Kind.String(), e.Magnitude, e.RemainingTurns, e.Source); err != nil {
			return fmt.Errorf("inserting status effect for character %d: %w", id, err)
		}
	}
	return nil
}

func saveBuffs(ctx context.Context, tx *sql.Tx, id int64, buffs []model.ActiveBuff) error {
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM character_buffs WHERE character_id = ?`, id); err != nil {
		return fmt.Errorf("clearing buffs for character %d: %w", id, err)
	}
	for i, b := range buffs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO character_buffs (character_id, position, kind, magnitude, expires_at, source)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			id, i, b.Kind.String(), b.Magnitude, toMillis(b.ExpiresAt), b.Source); err != nil {
			return fmt.Errorf("inserting buff for character %d: %w", id, err)
		}
	}
	return nil
}

// Amounts are stored as decimal text; SQLite integers stop at 64 bits.
func amount(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}

func parseAmount(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(strings.TrimSpace(s), 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", s)
	}
	return v, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}
