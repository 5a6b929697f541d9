package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/streakarena/internal/config"
)

// DB owns the pgx pool shared by the character repository and the encounter store.
type DB struct {
	pool *pgxpool.Pool
}

// New connects to PostgreSQL using cfg and verifies the connection.
// Zero pool settings keep pgxpool defaults.
func New(ctx context.Context, cfg config.DatabaseConfig) (*DB, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parsing database config: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MaxConnIdleTime > 0 {
		poolCfg.MaxConnIdleTime = cfg.MaxConnIdleTime
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to database %s:%d: %w", cfg.Host, cfg.Port, err)
	}
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database %s:%d: %w", cfg.Host, cfg.Port, err)
	}

	slog.Info("database connected", "host", cfg.Host, "db", cfg.DBName, "max_conns", poolCfg.MaxConns)
	return &DB{pool: pool}, nil
}

// Close closes the connection pool.
func (d *DB) Close() {
	d.pool.Close()
}

// Pool returns the underlying pgx pool.
func (d *DB) Pool() *pgxpool.Pool {
	return d.pool
}

// EncounterStore wires a repository and a transactional store over this pool.
func (d *DB) EncounterStore() *EncounterStore {
	return NewEncounterStore(d.pool, NewCharacterRepository(d.pool))
}
