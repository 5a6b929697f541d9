package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Database drivers understood by cmd/arenad.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Arena holds all configuration for the arena server and simulator.
type Arena struct {
	LogLevel string `yaml:"log_level" env:"ARENA_LOG_LEVEL"`

	HTTP      HTTPConfig      `yaml:"http"`
	Database  DatabaseConfig  `yaml:"database"`
	Battle    Battle          `yaml:"battle"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// CatalogPath points to a YAML monster catalog. Empty = built-in catalog.
	CatalogPath string `yaml:"catalog_path" env:"ARENA_CATALOG_PATH"`
}

// HTTPConfig holds the API listener settings.
type HTTPConfig struct {
	BindAddress     string        `yaml:"bind_address" env:"ARENA_HTTP_BIND"`
	Port            int           `yaml:"port" env:"ARENA_HTTP_PORT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// Addr returns host:port for net/http.
func (h HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", h.BindAddress, h.Port)
}

// DatabaseConfig holds connection parameters for either PostgreSQL or SQLite.
type DatabaseConfig struct {
	Driver   string `yaml:"driver" env:"ARENA_DB_DRIVER"`
	Host     string `yaml:"host" env:"ARENA_DB_HOST"`
	Port     int    `yaml:"port" env:"ARENA_DB_PORT"`
	User     string `yaml:"user" env:"ARENA_DB_USER"`
	Password string `yaml:"password" env:"ARENA_DB_PASSWORD"`
	DBName   string `yaml:"dbname" env:"ARENA_DB_NAME"`
	SSLMode  string `yaml:"sslmode" env:"ARENA_DB_SSLMODE"`

	MaxConns        int32         `yaml:"max_conns" env:"ARENA_DB_MAX_CONNS"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time"`

	// SQLitePath is the database file used when Driver is sqlite.
	SQLitePath string `yaml:"sqlite_path" env:"ARENA_SQLITE_PATH"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(d.User), url.QueryEscape(d.Password), d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// Battle holds combat tuning that operators may change without a rebuild.
// Formula constants live in the combat package.
type Battle struct {
	MonsterTurnCap  int   `yaml:"monster_turn_cap"`
	DuelTurnCap     int   `yaml:"duel_turn_cap"`
	MinPlayerDamage int64 `yaml:"min_player_damage"`

	// StunSkipsTurn makes a stunned combatant lose its attack for the turn.
	// When false, STUN is only ticked and logged.
	StunSkipsTurn bool `yaml:"stun_skips_turn"`

	ExpRate              float64 `yaml:"exp_rate" env:"ARENA_EXP_RATE"`
	CoinRate             float64 `yaml:"coin_rate" env:"ARENA_COIN_RATE"`
	DropChanceMultiplier float64 `yaml:"drop_chance_multiplier"`
	DropAmountMultiplier float64 `yaml:"drop_amount_multiplier"`
}

// DefaultBattle returns x1 rates, 50-turn caps and stun that blocks actions.
func DefaultBattle() Battle {
	return Battle{
		MonsterTurnCap:       50,
		DuelTurnCap:          50,
		MinPlayerDamage:      2,
		StunSkipsTurn:        true,
		ExpRate:              1.0,
		CoinRate:             1.0,
		DropChanceMultiplier: 1.0,
		DropAmountMultiplier: 1.0,
	}
}

// TelemetryConfig enables OTLP trace export when Endpoint is set.
type TelemetryConfig struct {
	Endpoint    string `yaml:"endpoint" env:"ARENA_OTEL_ENDPOINT"`
	ServiceName string `yaml:"service_name" env:"ARENA_OTEL_SERVICE"`
}

// DefaultArena returns Arena config with sensible defaults.
func DefaultArena() Arena {
	return Arena{
		LogLevel: "info",
		HTTP: HTTPConfig{
			BindAddress:     "0.0.0.0",
			Port:            8080,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Driver:     DriverSQLite,
			Host:       "127.0.0.1",
			Port:       5432,
			User:       "arena",
			Password:   "arena",
			DBName:     "arena",
			SSLMode:    "disable",
			SQLitePath: "arena.db",
		},
		Battle: DefaultBattle(),
		Telemetry: TelemetryConfig{
			ServiceName: "arenad",
		},
	}
}

// LoadArena loads config from a YAML file, then applies ARENA_* environment
// overrides. If the file doesn't exist, defaults are used.
func LoadArena(path string) (Arena, error) {
	cfg := DefaultArena()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case !os.IsNotExist(err):
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing env overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects settings the engine cannot run with.
func (a Arena) Validate() error {
	switch a.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unknown database driver %q", a.Database.Driver)
	}
	if a.Battle.MonsterTurnCap < 1 || a.Battle.DuelTurnCap < 1 {
		return fmt.Errorf("turn caps must be positive (monster=%d, duel=%d)",
			a.Battle.MonsterTurnCap, a.Battle.DuelTurnCap)
	}
	if a.Battle.MinPlayerDamage < 0 {
		return fmt.Errorf("min_player_damage must be >= 0, got %d", a.Battle.MinPlayerDamage)
	}
	if a.Battle.ExpRate < 0 || a.Battle.CoinRate < 0 {
		return fmt.Errorf("reward rates must be >= 0")
	}
	return nil
}
