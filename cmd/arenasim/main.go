// Command arenasim runs offline streak simulations against a throwaway
// SQLite store and prints a styled summary.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/big"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"

	"github.com/udisondev/streakarena/internal/battle"
	"github.com/udisondev/streakarena/internal/config"
	"github.com/udisondev/streakarena/internal/data"
	"github.com/udisondev/streakarena/internal/db/sqlitestore"
	"github.com/udisondev/streakarena/internal/game/combat"
	"github.com/udisondev/streakarena/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true)
	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5FD75F"))
	lossStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F5F"))
	logStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(1).
			Foreground(lipgloss.Color("#AAAAAA"))
)

type options struct {
	characters int
	rounds     int
	level      int
	seed       int64
	dbPath     string
	configPath string
	showLog    bool
}

func main() {
	var opts options
	flag.IntVar(&opts.characters, "characters", 4, "number of simulated characters")
	flag.IntVar(&opts.rounds, "rounds", 20, "battles per character")
	flag.IntVar(&opts.level, "level", 10, "character and enemy level")
	flag.Int64Var(&opts.seed, "seed", 1, "base seed")
	flag.StringVar(&opts.dbPath, "db", "", "sqlite path (default: temporary file)")
	flag.StringVar(&opts.configPath, "config", "config/arena.yaml", "config file for battle tuning")
	flag.BoolVar(&opts.showLog, "log", false, "print the battle log of the last round")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	if err := run(ctx, opts); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	if opts.characters < 1 || opts.rounds < 1 || opts.level < 1 {
		return fmt.Errorf("characters, rounds and level must be positive")
	}

	cfg, err := config.LoadArena(opts.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	catalog := data.DefaultCatalog()
	if cfg.CatalogPath != "" {
		if catalog, err = data.LoadCatalogFile(cfg.CatalogPath); err != nil {
			return fmt.Errorf("loading monster catalog: %w", err)
		}
	}

	dbPath := opts.dbPath
	if dbPath == "" {
		dir, err := os.MkdirTemp("", "arenasim-*")
		if err != nil {
			return fmt.Errorf("creating temp dir: %w", err)
		}
		defer os.RemoveAll(dir)
		dbPath = filepath.Join(dir, "sim.db")
	}

	store, err := sqlitestore.Open(ctx, dbPath)
	if err != nil {
		return fmt.Errorf("opening sqlite store: %w", err)
	}
	defer store.Close()

	ids, err := seedCharacters(ctx, store, opts)
	if err != nil {
		return err
	}

	svc := battle.NewService(combat.NewEngine(cfg.Battle, catalog), store)

	fmt.Println(titleStyle.Render(fmt.Sprintf("Streak arena: %d characters x %d rounds at level %d",
		len(ids), opts.rounds, opts.level)))

	best := make(map[int64]int64, len(ids))
	var last map[int64]*combat.BattleOutcome
	for round := range opts.rounds {
		results, err := svc.FightMany(ctx, ids, int32(opts.level), opts.seed+int64(round))
		if err != nil {
			return fmt.Errorf("round %d: %w", round+1, err)
		}
		fmt.Println(renderRound(round+1, ids, results))
		for id, out := range results {
			best[id] = max(best[id], out.NewStreak)
		}
		last = results
	}

	fmt.Println()
	fmt.Println(titleStyle.Render("Summary"))
	for _, id := range ids {
		snap, err := store.LoadCharacter(ctx, id)
		if err != nil {
			return fmt.Errorf("loading character %d: %w", id, err)
		}
		fmt.Printf("%-16s lvl %-3d streak %-4d best %-4d exp %-10s coins %s\n",
			snap.Name, snap.Level, snap.Streak, best[id], snap.Exp(), snap.Coins())
	}

	if opts.showLog && last != nil {
		for _, id := range ids {
			fmt.Println()
			fmt.Println(logStyle.Render(strings.Join(last[id].Log, "\n")))
		}
	}
	return nil
}

func seedCharacters(ctx context.Context, store *sqlitestore.Store, opts options) ([]int64, error) {
	archetypes := []model.Archetype{
		model.ArchetypeBerserker,
		model.ArchetypeAssassin,
		model.ArchetypeVenomancer,
		model.ArchetypePyromancer,
		model.ArchetypeNone,
	}
	level := int32(min(opts.level, data.MaxPlayerLevel))

	ids := make([]int64, 0, opts.characters)
	for i := range opts.characters {
		a := archetypes[i%len(archetypes)]
		hp := int64(120 + 30*int64(level))
		snap := &model.CharacterSnapshot{
			Name:       fmt.Sprintf("%s-%d", a, i+1),
			Level:      level,
			CurrentHP:  hp,
			MaxHP:      hp,
			Attack:     int64(20 + 6*level),
			Defense:    int64(10 + 4*level),
			Speed:      int64(8 + level/2 + int32(i%3)),
			Archetype:  a,
			Experience: big.NewInt(data.GetExpForLevel(level)),
			Currency:   new(big.Int),
		}
		id, err := store.Create(ctx, snap)
		if err != nil {
			return nil, fmt.Errorf("creating character %s: %w", snap.Name, err)
		}
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}

func renderRound(round int, ids []int64, results map[int64]*combat.BattleOutcome) string {
	var b strings.Builder
	fmt.Fprintf(&b, "round %-3d", round)
	for _, id := range ids {
		out := results[id]
		cell := fmt.Sprintf(" %s(%d)", shortName(out.Monster.Name), out.NewStreak)
		if out.Won {
			b.WriteString(winStyle.Render(cell))
		} else {
			b.WriteString(lossStyle.Render(cell))
		}
	}
	return b.String()
}

func shortName(name string) string {
	if len(name) <= 12 {
		return name
	}
	return name[:12]
}
