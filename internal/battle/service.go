package battle

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/streakarena/internal/game/combat"
	"github.com/udisondev/streakarena/internal/model"
	"github.com/udisondev/streakarena/internal/rng"
)

const tracerName = "github.com/udisondev/streakarena/internal/battle"

// FightRequest describes one player vs monster encounter.
type FightRequest struct {
	CharacterID int64
	// EnemyLevel is the opponent level; 0 uses the character level.
	EnemyLevel int32
	// Seed fixes the encounter RNG. When nil, BaseSeed is mixed with the
	// character id and streak; when both are nil a random seed is used.
	Seed     *int64
	BaseSeed *int64
}

// Service runs encounters against persisted characters.
// Thread-safe: encounters of one character are serialised, different
// characters run in parallel.
type Service struct {
	engine *combat.Engine
	store  *StateStore
	tracer trace.Tracer
}

// NewService creates a battle service.
func NewService(engine *combat.Engine, repo Repository) *Service {
	return &Service{
		engine: engine,
		store:  NewStateStore(repo),
		tracer: otel.Tracer(tracerName),
	}
}

// Fight resolves one encounter for req.CharacterID and persists the result.
func (s *Service) Fight(ctx context.Context, req FightRequest) (*combat.BattleOutcome, error) {
	ctx, span := s.tracer.Start(ctx, "battle.Fight",
		trace.WithAttributes(attribute.Int64("character.id", req.CharacterID)))
	defer span.End()

	out, err := s.fight(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.Bool("battle.won", out.Won),
		attribute.Int("battle.turns", out.Turns),
		attribute.Int64("battle.streak", out.NewStreak),
	)
	return out, nil
}

func (s *Service) fight(ctx context.Context, req FightRequest) (*combat.BattleOutcome, error) {
	sess, err := s.store.Open(ctx, req.CharacterID)
	if err != nil {
		return nil, err
	}
	defer sess.Close()

	snap := sess.Snapshot(req.CharacterID)
	level := req.EnemyLevel
	if level <= 0 {
		level = snap.Level
	}

	seed, err := encounterSeed(req.Seed, req.BaseSeed, snap)
	if err != nil {
		return nil, err
	}

	out, err := s.engine.ResolveBattle(snap, level, snap.Streak, seed)
	if err != nil {
		return nil, fmt.Errorf("resolving battle for character %d: %w", req.CharacterID, err)
	}

	if err := sess.Flush(ctx, out.Writeback); err != nil {
		return nil, fmt.Errorf("character %d: %w", req.CharacterID, err)
	}

	slog.Info("battle resolved",
		"characterID", snap.CharacterID,
		"character", snap.Name,
		"monster", out.Monster.Name,
		"won", out.Won,
		"turns", out.Turns,
		"streak", out.NewStreak,
		"exp", out.Exp.String(),
		"coins", out.Coins.String())

	return out, nil
}

// Duel resolves a player vs player encounter and persists both sides.
// seed may be nil for a random encounter.
func (s *Service) Duel(ctx context.Context, aID, bID int64, seed *int64) (*combat.DuelOutcome, error) {
	ctx, span := s.tracer.Start(ctx, "battle.Duel",
		trace.WithAttributes(
			attribute.Int64("duel.a", aID),
			attribute.Int64("duel.b", bID),
		))
	defer span.End()

	out, err := s.duel(ctx, aID, bID, seed)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(
		attribute.Int64("duel.winner", out.WinnerID),
		attribute.Bool("duel.draw", out.Draw),
	)
	return out, nil
}

func (s *Service) duel(ctx context.Context, aID, bID int64, seed *int64) (*combat.DuelOutcome, error) {
	if aID == bID {
		return nil, fmt.Errorf("character %d cannot duel itself", aID)
	}

	sess, err := s.store.Open(ctx, aID, bID)
	if err != nil {
		return nil, err
	}
	defer sess.Close()

	a, b := sess.Snapshot(aID), sess.Snapshot(bID)
	sd, err := encounterSeed(seed, nil, a)
	if err != nil {
		return nil, err
	}

	out, err := s.engine.ResolveDuel(a, b, sd)
	if err != nil {
		return nil, fmt.Errorf("resolving duel %d vs %d: %w", aID, bID, err)
	}
	if err := sess.Flush(ctx, out.A, out.B); err != nil {
		return nil, fmt.Errorf("duel %d vs %d: %w", aID, bID, err)
	}

	slog.Info("duel resolved",
		"a", a.Name,
		"b", b.Name,
		"winnerID", out.WinnerID,
		"draw", out.Draw,
		"turns", out.Turns)

	return out, nil
}

// FightMany runs one encounter per character concurrently. The first error
// cancels the remaining encounters; results of finished ones are kept.
func (s *Service) FightMany(ctx context.Context, ids []int64, enemyLevel int32, baseSeed int64) (map[int64]*combat.BattleOutcome, error) {
	var (
		mu      sync.Mutex
		results = make(map[int64]*combat.BattleOutcome, len(ids))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for _, id := range ids {
		g.Go(func() error {
			out, err := s.Fight(gctx, FightRequest{
				CharacterID: id,
				EnemyLevel:  enemyLevel,
				BaseSeed:    &baseSeed,
			})
			if err != nil {
				return err
			}
			mu.Lock()
			results[id] = out
			mu.Unlock()
			return nil
		})
	}

	err := g.Wait()
	return results, err
}

// Preview generates the opponent a level character at streak would meet
// when fighting at its own level. Nothing is persisted.
func (s *Service) Preview(level int32, streak int64, seed int64) (*model.Monster, error) {
	return s.engine.Generator().Generate(rng.New(seed), level, level, streak)
}

func encounterSeed(seed, base *int64, snap *model.CharacterSnapshot) (int64, error) {
	switch {
	case seed != nil:
		return *seed, nil
	case base != nil:
		return rng.DeriveSeed(*base, snap.CharacterID, snap.Streak), nil
	}
	sd, err := rng.NewSeed()
	if err != nil {
		return 0, fmt.Errorf("generating encounter seed: %w", err)
	}
	return sd, nil
}
