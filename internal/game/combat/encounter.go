package combat

import (
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/udisondev/streakarena/internal/config"
	"github.com/udisondev/streakarena/internal/data"
	"github.com/udisondev/streakarena/internal/model"
	"github.com/udisondev/streakarena/internal/rng"
	"github.com/udisondev/streakarena/internal/spawn"
)

// BattleOutcome is the result of a player vs monster encounter.
type BattleOutcome struct {
	Won        bool
	TimedOut   bool
	Turns      int
	Log        []string
	FinalHP    int64
	Monster    *model.Monster
	Exp        *big.Int
	Coins      *big.Int
	NewStreak  int64
	Milestones []model.Milestone
	Drops      []model.Drop
	LevelUp    LevelUp
	Writeback  model.Writeback
}

// DuelOutcome is the result of a player vs player encounter.
// WinnerID is 0 on a draw.
type DuelOutcome struct {
	WinnerID int64
	Draw     bool
	Turns    int
	Log      []string
	A        model.Writeback
	B        model.Writeback
}

// Engine resolves encounters. It holds no per-encounter state and is safe
// for concurrent use; every call builds its own RNG from the given seed.
type Engine struct {
	cfg       config.Battle
	catalog   *data.Catalog
	generator *spawn.Generator
	damage    DamageCalculator
	now       func() time.Time
}

// NewEngine creates an engine over catalog with battle tuning cfg.
func NewEngine(cfg config.Battle, catalog *data.Catalog) *Engine {
	return &Engine{
		cfg:       cfg,
		catalog:   catalog,
		generator: spawn.NewGenerator(catalog),
		damage:    DamageCalculator{MinPlayerDamage: cfg.MinPlayerDamage},
		now:       time.Now,
	}
}

// SetClock replaces the wall clock used to expire buffs.
func (e *Engine) SetClock(now func() time.Time) {
	e.now = now
}

// Generator returns the monster generator used by ResolveBattle.
func (e *Engine) Generator() *spawn.Generator {
	return e.generator
}

// fighter is one side of a running encounter.
type fighter struct {
	c       *model.Combatant
	effects *model.StatusList
	state   *model.EncounterState // nil for monsters
}

// ResolveBattle generates an opponent for enemyLevel/streak and fights it
// with the snapshot's character. Deterministic for a fixed seed and clock.
func (e *Engine) ResolveBattle(snap *model.CharacterSnapshot, enemyLevel int32, streak int64, seed int64) (*BattleOutcome, error) {
	src := rng.New(seed)

	monster, err := e.generator.Generate(src, enemyLevel, snap.Level, streak)
	if err != nil {
		return nil, err
	}
	return e.FightMonster(src, snap, monster, streak)
}

// FightMonster runs the encounter against an already generated monster.
func (e *Engine) FightMonster(src rng.Source, snap *model.CharacterSnapshot, monster *model.Monster, streak int64) (*BattleOutcome, error) {
	buffs := model.PruneBuffs(snap.Buffs, e.now())
	player := e.newPlayerFighter(snap, buffs)
	enemy := &fighter{c: monster.Combatant(), effects: model.NewStatusList(nil)}

	log := model.NewBattleLog(8 + 4*e.cfg.MonsterTurnCap)
	log.Addf("%s (Lv.%d, %d HP) challenges %s (Lv.%d, %d HP)",
		player.c.Name, player.c.Level, player.c.CurrentHP, enemy.c.Name, enemy.c.Level, enemy.c.CurrentHP)

	res := e.run(src, player, enemy, e.cfg.MonsterTurnCap, log)
	won := res.winner == player

	out := &BattleOutcome{
		Won:      won,
		TimedOut: res.timedOut,
		Turns:    res.turns,
		FinalHP:  player.c.CurrentHP,
		Monster:  monster,
		Exp:      new(big.Int),
		Coins:    new(big.Int),
	}

	if res.timedOut {
		log.Addf("%s could not finish %s in %d turns and retreats", player.c.Name, enemy.c.Name, res.turns)
	}

	exp := snap.Exp()
	coins := new(big.Int).Set(snap.Coins())
	out.LevelUp = LevelUp{Experience: new(big.Int).Set(exp), OldLevel: snap.Level, NewLevel: snap.Level}

	if won {
		out.NewStreak = streak + 1
		reward := ComputeReward(monster, out.NewStreak, snap.Level)
		out.Exp = ApplyRate(reward.Exp, e.cfg.ExpRate)
		out.Coins = ApplyRate(reward.Coins, e.cfg.CoinRate)
		out.Milestones = reward.Milestones
		if def, err := e.catalog.Get(monster.TemplateID); err == nil {
			out.Drops = CalculateDrops(src, def, &e.cfg)
		}

		coins.Add(coins, out.Coins)
		out.LevelUp = AddExperience(snap.Level, exp, out.Exp)

		log.Addf("%s wins! +%s exp, +%s coins, streak %d", player.c.Name, out.Exp, out.Coins, out.NewStreak)
		for _, m := range out.Milestones {
			log.Addf("Milestone reached: %s", m.Name)
		}
		if out.LevelUp.Leveled() {
			log.Addf("%s reached level %d", player.c.Name, out.LevelUp.NewLevel)
		}
	} else {
		out.NewStreak = 0
		log.Addf("%s was defeated. Streak lost", player.c.Name)
	}

	finalHP := model.ClampHP(player.c.CurrentHP, snap.MaxHP)
	if out.LevelUp.Leveled() {
		finalHP = snap.MaxHP
	}
	out.FinalHP = finalHP

	out.Writeback = model.Writeback{
		CharacterID:   snap.CharacterID,
		CurrentHP:     finalHP,
		MaxHP:         snap.MaxHP,
		Level:         out.LevelUp.NewLevel,
		Experience:    out.LevelUp.Experience,
		Currency:      coins,
		Streak:        out.NewStreak,
		State:         *player.state,
		StatusEffects: player.effects.Effects(),
		Buffs:         buffs,
	}
	out.Log = log.Entries()

	slog.Debug("battle resolved",
		"character", snap.CharacterID,
		"monster", monster.Name,
		"won", won,
		"turns", res.turns,
		"timedOut", res.timedOut,
		"streak", out.NewStreak)

	return out, nil
}

// ResolveDuel fights two characters. Neither streak nor rewards change;
// health, encounter state and status effects are written back for both.
func (e *Engine) ResolveDuel(a, b *model.CharacterSnapshot, seed int64) (*DuelOutcome, error) {
	return e.resolveDuelWith(rng.New(seed), a, b)
}

func (e *Engine) resolveDuelWith(src rng.Source, a, b *model.CharacterSnapshot) (*DuelOutcome, error) {
	if a.CharacterID == b.CharacterID {
		return nil, fmt.Errorf("character %d cannot duel itself", a.CharacterID)
	}
	now := e.now()

	buffsA := model.PruneBuffs(a.Buffs, now)
	buffsB := model.PruneBuffs(b.Buffs, now)
	fa := e.newPlayerFighter(a, buffsA)
	fb := e.newPlayerFighter(b, buffsB)

	log := model.NewBattleLog(8 + 4*e.cfg.DuelTurnCap)
	log.Addf("%s duels %s", fa.c.Name, fb.c.Name)

	res := e.run(src, fa, fb, e.cfg.DuelTurnCap, log)

	out := &DuelOutcome{Turns: res.turns}
	switch {
	case res.timedOut:
		out.Draw = true
		log.Addf("The duel ends in a draw after %d turns", res.turns)
	default:
		out.WinnerID = res.winner.c.ID
		log.Addf("%s wins the duel", res.winner.c.Name)
	}

	out.A = duelWriteback(a, fa, buffsA)
	out.B = duelWriteback(b, fb, buffsB)
	out.Log = log.Entries()

	slog.Debug("duel resolved",
		"a", a.CharacterID,
		"b", b.CharacterID,
		"winner", out.WinnerID,
		"turns", res.turns)

	return out, nil
}

func duelWriteback(snap *model.CharacterSnapshot, f *fighter, buffs []model.ActiveBuff) model.Writeback {
	return model.Writeback{
		CharacterID:   snap.CharacterID,
		CurrentHP:     model.ClampHP(f.c.CurrentHP, snap.MaxHP),
		MaxHP:         snap.MaxHP,
		Level:         snap.Level,
		Experience:    new(big.Int).Set(snap.Exp()),
		Currency:      new(big.Int).Set(snap.Coins()),
		Streak:        snap.Streak,
		State:         *f.state,
		StatusEffects: f.effects.Effects(),
		Buffs:         buffs,
	}
}

func (e *Engine) newPlayerFighter(snap *model.CharacterSnapshot, buffs []model.ActiveBuff) *fighter {
	state := snap.State
	if err := state.Validate(); err != nil {
		slog.Warn("resetting invalid encounter state",
			"character", snap.CharacterID,
			"error", err)
		state = model.EncounterState{}
	}
	return &fighter{
		c:       EffectiveStats(snap, buffs),
		effects: model.NewStatusList(snap.StatusEffects),
		state:   &state,
	}
}

type encounterResult struct {
	winner   *fighter // nil when timed out
	turns    int
	timedOut bool
}

// run alternates attacks until one side is down or turnCap rounds pass.
// The faster side opens every round; the slower side only answers while
// both are standing.
func (e *Engine) run(src rng.Source, a, b *fighter, turnCap int, log *model.BattleLog) encounterResult {
	first, _ := ResolveOrder(a.c, b.c)
	faster, slower := a, b
	if first != a.c {
		faster, slower = b, a
	}

	if faster.c.IsDead() || slower.c.IsDead() {
		return encounterResult{winner: survivor(faster, slower)}
	}

	for turn := 1; turn <= turnCap; turn++ {
		log.Addf("Turn %d", turn)
		if e.act(src, faster, slower, log) {
			return encounterResult{winner: survivor(faster, slower), turns: turn}
		}
		if e.act(src, slower, faster, log) {
			return encounterResult{winner: survivor(faster, slower), turns: turn}
		}
	}
	return encounterResult{turns: turnCap, timedOut: true}
}

func survivor(a, b *fighter) *fighter {
	if a.c.IsDead() {
		return b
	}
	return a
}

// act runs one combatant's turn: status tick, then an attack unless stunned.
// Returns true when either side is down.
func (e *Engine) act(src rng.Source, attacker, defender *fighter, log *model.BattleLog) bool {
	tick := TickStatus(attacker.c.Name, attacker.effects, attacker.c.CurrentHP, attacker.c.MaxHP)
	attacker.c.CurrentHP = tick.HP
	for _, msg := range tick.Messages {
		log.Add(msg)
	}
	if attacker.c.IsDead() {
		log.Addf("%s succumbs", attacker.c.Name)
		return true
	}
	if tick.Stunned && e.cfg.StunSkipsTurn {
		log.Addf("%s cannot act", attacker.c.Name)
		return false
	}

	dmg := e.damage.Compute(src, attacker.c.Attack, defender.c.Defense, attacker.c.Monster)
	hit := ApplyArchetype(attacker.c.Archetype, Hit{Raw: dmg.Damage, Critical: dmg.Critical}, attacker.state, defender.effects, src)
	dealt := defender.c.ReduceCurrentHP(hit.Damage)

	switch {
	case dmg.SuperCritical:
		log.Addf("%s lands a SUPER CRITICAL on %s for %d", attacker.c.Name, defender.c.Name, dealt)
	case dmg.Critical:
		log.Addf("%s critically hits %s for %d", attacker.c.Name, defender.c.Name, dealt)
	default:
		log.Addf("%s hits %s for %d", attacker.c.Name, defender.c.Name, dealt)
	}
	if hit.Note != "" {
		log.Addf("%s: %s", attacker.c.Name, hit.Note)
	}

	if defender.c.IsDead() {
		log.Addf("%s is defeated", defender.c.Name)
		return true
	}
	return false
}
