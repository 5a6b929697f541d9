package combat

import (
	"math"

	"github.com/udisondev/streakarena/internal/rng"
)

// Damage balance constants.
const (
	// EarlyGameAttackThreshold switches exponent/tier tables: attack below it
	// uses the early-game profile.
	EarlyGameAttackThreshold = 100

	// DefenseImpact is the share of defense subtracted from attack.
	DefenseImpact = 0.5

	// MonsterMinDamage is the floor for every monster hit.
	MonsterMinDamage = 1

	// Per-side caps. Damage above the cap grows as excess^DamageOverflowExponent.
	PlayerDamageCap        = 10_000
	MonsterDamageCap       = 2_500
	DamageOverflowExponent = 0.5

	// Super critical multiplier = SuperCritBaseMultiplier + (ratio-1)*SuperCritRatioScale,
	// bonus part clamped to [0, SuperCritMaxBonus].
	SuperCritBaseMultiplier = 2.0
	SuperCritRatioScale     = 0.25
	SuperCritMaxBonus       = 1.0
)

// Power ratio tier boundaries.
const (
	ratioCrushing = 2.5 // ratio >= 2.5
	ratioStrong   = 1.5 // ratio >= 1.5
	ratioWeak     = 0.7 // ratio <= 0.7
	ratioFeeble   = 0.4 // ratio <= 0.4
)

// powerExponents raise attack and defense before the ratio is taken.
type powerExponents struct {
	attack  float64
	defense float64
}

// Monsters are under-scaled on purpose: their attack exponent is lower and
// their target's defense counts for more.
var (
	playerEarlyExponents  = powerExponents{attack: 1.00, defense: 0.90}
	playerLateExponents   = powerExponents{attack: 0.85, defense: 0.80}
	monsterEarlyExponents = powerExponents{attack: 0.90, defense: 1.00}
	monsterLateExponents  = powerExponents{attack: 0.75, defense: 0.85}
)

// tierTable maps a power ratio to a damage multiplier.
type tierTable struct {
	crushing float64
	strong   float64
	weak     float64
	feeble   float64
	normal   float64
}

var (
	playerEarlyTiers  = tierTable{crushing: 2.00, strong: 1.50, weak: 0.60, feeble: 0.35, normal: 1.0}
	playerLateTiers   = tierTable{crushing: 1.80, strong: 1.35, weak: 0.70, feeble: 0.50, normal: 1.0}
	monsterEarlyTiers = tierTable{crushing: 1.50, strong: 1.20, weak: 0.70, feeble: 0.50, normal: 1.0}
	monsterLateTiers  = tierTable{crushing: 1.40, strong: 1.15, weak: 0.75, feeble: 0.55, normal: 1.0}
)

func (t tierTable) multiplier(ratio float64) float64 {
	switch {
	case ratio >= ratioCrushing:
		return t.crushing
	case ratio >= ratioStrong:
		return t.strong
	case ratio <= ratioFeeble:
		return t.feeble
	case ratio <= ratioWeak:
		return t.weak
	default:
		return t.normal
	}
}

// critProfile holds critical-hit odds and multipliers for one side.
type critProfile struct {
	baseChance   float64
	ratioBonus   float64 // added chance per 1.0 of ratio above 1
	maxBonus     float64
	multiplier   float64
	superChance  float64 // rolled only after a successful crit
	damageCap    float64
	minimumFloor float64
}

var (
	playerCrit  = critProfile{baseChance: 0.10, ratioBonus: 0.05, maxBonus: 0.15, multiplier: 1.5, superChance: 0.10, damageCap: PlayerDamageCap}
	monsterCrit = critProfile{baseChance: 0.05, ratioBonus: 0.02, maxBonus: 0.05, multiplier: 1.3, superChance: 0.05, damageCap: MonsterDamageCap, minimumFloor: MonsterMinDamage}
)

// DamageResult is the outcome of one attack roll.
type DamageResult struct {
	Damage         int64
	Critical       bool
	SuperCritical  bool
	CritMultiplier float64
	PowerRatio     float64
}

// DamageCalculator computes hit damage. The zero value uses a player
// minimum of 0.
type DamageCalculator struct {
	// MinPlayerDamage floors player hits; monsters always deal at least 1.
	MinPlayerDamage int64
}

// Compute rolls one attack of attack vs defense.
//
// Formula:
//  1. ratio = attack^ea / defense^ed, exponents chosen by side and early/late game
//  2. base  = floor((attack - defense*DefenseImpact) * tier(ratio)), floored per side
//  3. crit  = Bernoulli(base chance + ratio bonus); super crit nested inside crit
//  4. cap   = cap + excess^0.5 above the side's cap
func (c DamageCalculator) Compute(src rng.Source, attack, defense int64, monsterAttacking bool) DamageResult {
	atk := float64(max(attack, 0))
	def := float64(max(defense, 0))
	early := attack < EarlyGameAttackThreshold

	exps, tiers, crit := profileFor(monsterAttacking, early)
	if !monsterAttacking {
		crit.minimumFloor = float64(max(c.MinPlayerDamage, 0))
	}

	ratio := math.Pow(math.Max(atk, 1), exps.attack) / math.Pow(math.Max(def, 1), exps.defense)

	damage := math.Floor((atk - def*DefenseImpact) * tiers.multiplier(ratio))
	if damage < crit.minimumFloor {
		damage = crit.minimumFloor
	}

	result := DamageResult{CritMultiplier: 1, PowerRatio: ratio}

	chance := crit.baseChance + clamp((ratio-1)*crit.ratioBonus, 0, crit.maxBonus)
	if rng.Chance(src, chance) {
		result.Critical = true
		result.CritMultiplier = crit.multiplier
		if rng.Chance(src, crit.superChance) {
			result.SuperCritical = true
			result.CritMultiplier = SuperCritBaseMultiplier +
				clamp((ratio-1)*SuperCritRatioScale, 0, SuperCritMaxBonus)
		}
		damage = math.Floor(damage * result.CritMultiplier)
	}

	result.Damage = int64(softCap(damage, crit.damageCap))
	return result
}

func profileFor(monster, early bool) (powerExponents, tierTable, critProfile) {
	switch {
	case monster && early:
		return monsterEarlyExponents, monsterEarlyTiers, monsterCrit
	case monster:
		return monsterLateExponents, monsterLateTiers, monsterCrit
	case early:
		return playerEarlyExponents, playerEarlyTiers, playerCrit
	default:
		return playerLateExponents, playerLateTiers, playerCrit
	}
}

// softCap keeps damage bounded without hard clamping: cap + excess^γ.
func softCap(damage, limit float64) float64 {
	if damage <= limit {
		return damage
	}
	return limit + math.Floor(math.Pow(damage-limit, DamageOverflowExponent))
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
