package combat

import (
	"math/big"

	"github.com/udisondev/streakarena/internal/model"
)

// levelBracket gives catch-up multipliers (percent) to lower levels.
type levelBracket struct {
	maxLevel int32 // inclusive; 0 = no upper bound
	expPct   int64
	coinPct  int64
}

var levelBrackets = []levelBracket{
	{maxLevel: 20, expPct: 150, coinPct: 140},
	{maxLevel: 50, expPct: 125, coinPct: 120},
	{maxLevel: 0, expPct: 100, coinPct: 100},
}

// StreakBonusPctPerWin is the linear streak bonus: 100 + 5*streak percent.
const StreakBonusPctPerWin = 5

// periodicMilestones are checked most specific first; only the first
// matching entry applies.
var periodicMilestones = []model.Milestone{
	{Name: "legendary", Every: 100, Multiplier: 10},
	{Name: "epic", Every: 50, Multiplier: 7},
	{Name: "rare", Every: 25, Multiplier: 5},
	{Name: "great", Every: 10, Multiplier: 4},
	{Name: "good", Every: 5, Multiplier: 3},
}

// absoluteTiers add to the periodic multiplier once the streak reaches
// AtLeast. Only the highest reached tier applies.
var absoluteTiers = []model.Milestone{
	{Name: "tier-200", AtLeast: 200, Bonus: 5},
	{Name: "tier-150", AtLeast: 150, Bonus: 3},
	{Name: "tier-100", AtLeast: 100, Bonus: 2},
	{Name: "tier-50", AtLeast: 50, Bonus: 1},
}

func bracketFor(level int32) levelBracket {
	for _, b := range levelBrackets {
		if b.maxLevel == 0 || level <= b.maxLevel {
			return b
		}
	}
	return levelBrackets[len(levelBrackets)-1]
}

// StreakBonusPct returns the linear streak bonus in percent.
func StreakBonusPct(streak int64) *big.Int {
	s := big.NewInt(max(streak, 0))
	s.Mul(s, big.NewInt(StreakBonusPctPerWin))
	return s.Add(s, big.NewInt(100))
}

// Milestones returns the triggered milestones for streak and the combined
// milestone multiplier: periodic (exclusive, or 1) plus the absolute tier.
func Milestones(streak int64) ([]model.Milestone, int64) {
	var triggered []model.Milestone
	multiplier := int64(1)

	if streak > 0 {
		for _, m := range periodicMilestones {
			if streak%m.Every == 0 {
				triggered = append(triggered, m)
				multiplier = m.Multiplier
				break
			}
		}
	}
	for _, t := range absoluteTiers {
		if streak >= t.AtLeast {
			triggered = append(triggered, t)
			multiplier += t.Bonus
			break
		}
	}
	return triggered, multiplier
}

// ComputeReward returns exp and coins for beating monster at
// streakAfterWin. All multipliers are exact; results are floored once.
//
//	exp = floor(base * bracket% * (100 + 5*streak)% * milestone)
func ComputeReward(monster *model.Monster, streakAfterWin int64, playerLevel int32) model.RewardResult {
	bracket := bracketFor(playerLevel)
	streakPct := StreakBonusPct(streakAfterWin)
	milestones, milestoneMul := Milestones(streakAfterWin)

	scale := func(base, bracketPct int64) *big.Int {
		v := big.NewInt(max(base, 0))
		v.Mul(v, big.NewInt(bracketPct))
		v.Mul(v, streakPct)
		v.Mul(v, big.NewInt(milestoneMul))
		return v.Quo(v, big.NewInt(100*100))
	}

	return model.RewardResult{
		Exp:        scale(monster.Exp, bracket.expPct),
		Coins:      scale(monster.Coins, bracket.coinPct),
		NewStreak:  streakAfterWin,
		Milestones: milestones,
	}
}

// ApplyRate multiplies v by a server rate and floors. Rate 1 returns v.
func ApplyRate(v *big.Int, rate float64) *big.Int {
	if rate == 1 {
		return v
	}
	if rate <= 0 {
		return new(big.Int)
	}
	r := new(big.Rat).SetFloat64(rate)
	if r == nil {
		return v
	}
	r.Mul(r, new(big.Rat).SetInt(v))
	return new(big.Int).Quo(r.Num(), r.Denom())
}
