// Package spawn picks and scales arena opponents from the monster catalog.
package spawn

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/udisondev/streakarena/internal/data"
	"github.com/udisondev/streakarena/internal/model"
	"github.com/udisondev/streakarena/internal/rng"
)

// Bucket is a level band relative to the requested level.
type Bucket int

const (
	BucketSameLevel     Bucket = iota // |Δ| <= 2
	BucketBelowNear                   // L-8 .. L-3
	BucketSlightlyAbove               // L+3 .. L+8
	BucketMuchAbove                   // L+9 .. L+20
	bucketCount
)

func (b Bucket) String() string {
	switch b {
	case BucketSameLevel:
		return "same"
	case BucketBelowNear:
		return "below"
	case BucketSlightlyAbove:
		return "above"
	case BucketMuchAbove:
		return "far_above"
	default:
		return fmt.Sprintf("bucket(%d)", int(b))
	}
}

// Level band edges.
const (
	sameLevelSpread   = 2
	belowNearSpread   = 8
	slightAboveSpread = 8
	muchAboveSpread   = 20
)

// Bucket weight shift: at streak >= WeightShiftStreak weights are fully
// shifted toward harder buckets.
const WeightShiftStreak = 50

var (
	baseWeights  = [bucketCount]float64{50, 30, 15, 5}
	shiftWeights = [bucketCount]float64{-10, -20, 15, 15}
)

// Streak scaling constants.
const (
	// StreakScalingCap: streak beyond this adds no more stat scaling.
	StreakScalingCap = 100

	// HighLevelThreshold: players from this level face monsters with
	// HighLevelHPPerStreak extra HP per streak point (up to StreakScalingCap).
	HighLevelThreshold   = 50
	HighLevelHPPerStreak = 250

	basisPoints = 10_000
)

// scalingTier adds perStreakBP basis points for every streak point up to upTo.
type scalingTier struct {
	upTo        int64
	perStreakBP int64
}

// Diminishing per-tier increments: +3%, +2%, +1%, +0.5% per streak point.
var scalingTiers = []scalingTier{
	{upTo: 10, perStreakBP: 300},
	{upTo: 25, perStreakBP: 200},
	{upTo: 50, perStreakBP: 100},
	{upTo: StreakScalingCap, perStreakBP: 50},
}

// rankLabels are checked from the top; the first match prefixes the name.
var rankLabels = []struct {
	streak int64
	label  string
}{
	{100, "Mythic"},
	{50, "Legendary"},
	{25, "Elite"},
	{10, "Veteran"},
}

// Generator samples opponents from a catalog. Safe for concurrent use;
// randomness comes from the caller's source.
type Generator struct {
	catalog *data.Catalog
}

// NewGenerator creates a generator over catalog.
func NewGenerator(catalog *data.Catalog) *Generator {
	return &Generator{catalog: catalog}
}

// Generate picks a monster around level and scales it for streak.
// playerLevel is the challenger's own level; it alone decides the
// high-level HP bonus. Returns data.ErrMonsterNotFound if the catalog is empty.
func (g *Generator) Generate(src rng.Source, level, playerLevel int32, streak int64) (*model.Monster, error) {
	if streak < 0 {
		streak = 0
	}

	def, bucket := g.pick(src, level, streak)
	if def == nil {
		return nil, fmt.Errorf("generating monster for level %d: %w", level, data.ErrMonsterNotFound)
	}

	m := Scale(def, playerLevel, streak)

	slog.Debug("monster generated",
		"template", def.ID,
		"name", m.Name,
		"bucket", bucket,
		"level", level,
		"playerLevel", playerLevel,
		"streak", streak,
		"hp", m.HP)

	return m, nil
}

// Buckets splits the catalog into level bands around level.
func (g *Generator) Buckets(level int32) [bucketCount][]*data.MonsterDef {
	var out [bucketCount][]*data.MonsterDef
	for _, d := range g.catalog.Filter(func(*data.MonsterDef) bool { return true }) {
		if b, ok := bucketOf(d.Level, level); ok {
			out[b] = append(out[b], d)
		}
	}
	return out
}

func bucketOf(monsterLevel, level int32) (Bucket, bool) {
	diff := monsterLevel - level
	switch {
	case diff >= -sameLevelSpread && diff <= sameLevelSpread:
		return BucketSameLevel, true
	case diff < -sameLevelSpread && diff >= -belowNearSpread:
		return BucketBelowNear, true
	case diff > sameLevelSpread && diff <= slightAboveSpread:
		return BucketSlightlyAbove, true
	case diff > slightAboveSpread && diff <= muchAboveSpread:
		return BucketMuchAbove, true
	}
	return 0, false
}

// Weights returns bucket weights for streak. The total stays constant; the
// shift toward harder buckets is bounded at WeightShiftStreak.
func Weights(streak int64) [bucketCount]float64 {
	s := math.Min(float64(max(streak, 0)), WeightShiftStreak) / WeightShiftStreak
	var w [bucketCount]float64
	for i := range w {
		w[i] = baseWeights[i] + shiftWeights[i]*s
	}
	return w
}

func (g *Generator) pick(src rng.Source, level int32, streak int64) (*data.MonsterDef, Bucket) {
	buckets := g.Buckets(level)
	weights := Weights(streak)

	var total float64
	for i, b := range buckets {
		if len(b) == 0 {
			weights[i] = 0
		}
		total += weights[i]
	}
	if total <= 0 {
		return g.catalog.Nearest(level), BucketSameLevel
	}

	roll := src.Float64() * total
	chosen := Bucket(-1)
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		chosen = Bucket(i)
		if roll < w {
			break
		}
		roll -= w
	}

	candidates := buckets[chosen]
	return candidates[src.IntN(len(candidates))], chosen
}

// StatMultiplierBP returns the stat multiplier for streak in basis points
// (10000 = x1.0).
func StatMultiplierBP(streak int64) int64 {
	bp := int64(basisPoints)
	prev := int64(0)
	for _, t := range scalingTiers {
		if streak <= prev {
			break
		}
		n := min(streak, t.upTo) - prev
		bp += n * t.perStreakBP
		prev = t.upTo
	}
	return bp
}

// RankLabel returns the display rank for streak, or "" below the first breakpoint.
func RankLabel(streak int64) string {
	for _, r := range rankLabels {
		if streak >= r.streak {
			return r.label
		}
	}
	return ""
}

// Scale applies streak scaling to a catalog entry for a challenger of
// playerLevel. Stats never go below the catalog base values.
func Scale(def *data.MonsterDef, playerLevel int32, streak int64) *model.Monster {
	bp := StatMultiplierBP(streak)

	m := &model.Monster{
		TemplateID: def.ID,
		Name:       def.Name,
		Level:      def.Level,
		HP:         scaleStat(def.HP, bp),
		Attack:     scaleStat(def.Attack, bp),
		Defense:    scaleStat(def.Defense, bp),
		Speed:      def.Speed,
		Exp:        scaleStat(def.Exp, bp),
		Coins:      scaleStat(def.Coins, bp),
	}

	if playerLevel >= HighLevelThreshold {
		bonus := HighLevelHPPerStreak * min(streak, StreakScalingCap)
		m.HP = saturatingAdd(m.HP, bonus)
	}

	if rank := RankLabel(streak); rank != "" {
		m.Rank = rank
		m.Name = rank + " " + def.Name
	}
	return m
}

// scaleStat returns floor(v * bp / 10000) without overflowing int64.
func scaleStat(v, bp int64) int64 {
	if v <= 0 {
		return v
	}
	if v > math.MaxInt64/bp {
		whole := v / basisPoints * bp
		if whole < v {
			return math.MaxInt64
		}
		return whole
	}
	return v * bp / basisPoints
}

func saturatingAdd(a, b int64) int64 {
	if b > 0 && a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}
