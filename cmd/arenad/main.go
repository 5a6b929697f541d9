package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/streakarena/internal/api"
	"github.com/udisondev/streakarena/internal/battle"
	"github.com/udisondev/streakarena/internal/config"
	"github.com/udisondev/streakarena/internal/data"
	"github.com/udisondev/streakarena/internal/db"
	"github.com/udisondev/streakarena/internal/db/sqlitestore"
	"github.com/udisondev/streakarena/internal/game/combat"
	"github.com/udisondev/streakarena/internal/telemetry"
)

const ConfigPath = "config/arena.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Load config FIRST to determine log level
	cfgPath := ConfigPath
	if p := os.Getenv("ARENA_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadArena(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))

	slog.Info("arena server starting",
		"log_level", cfg.LogLevel,
		"driver", cfg.Database.Driver,
		"addr", cfg.HTTP.Addr())

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("setting up telemetry: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			slog.Warn("telemetry shutdown", "error", err)
		}
	}()

	catalog := data.DefaultCatalog()
	if cfg.CatalogPath != "" {
		if catalog, err = data.LoadCatalogFile(cfg.CatalogPath); err != nil {
			return fmt.Errorf("loading monster catalog: %w", err)
		}
	}
	slog.Info("monster catalog loaded", "monsters", catalog.Len())

	repo, closeRepo, err := openRepository(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer closeRepo()

	engine := combat.NewEngine(cfg.Battle, catalog)
	svc := battle.NewService(engine, repo)
	router := api.NewRouter(api.NewHandler(svc))

	srv := &http.Server{
		Addr:    cfg.HTTP.Addr(),
		Handler: router,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting http server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		slog.Info("http server stopped")
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// openRepository connects the configured storage backend and applies migrations.
func openRepository(ctx context.Context, cfg config.DatabaseConfig) (battle.Repository, func(), error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		database, err := db.New(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		if err := database.Migrate(ctx); err != nil {
			database.Close()
			return nil, nil, err
		}
		store := database.EncounterStore()
		return store, database.Close, nil

	default:
		store, err := sqlitestore.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		slog.Info("sqlite store opened", "path", cfg.SQLitePath)
		return store, func() {
			if err := store.Close(); err != nil {
				slog.Warn("closing sqlite store", "error", err)
			}
		}, nil
	}
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
