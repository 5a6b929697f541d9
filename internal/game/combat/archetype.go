package combat

import (
	"fmt"

	"github.com/udisondev/streakarena/internal/model"
	"github.com/udisondev/streakarena/internal/rng"
)

// Archetype balance constants.
const (
	ComboThreshold         = 5
	SecondWindMultiplier   = 2
	AssassinCritMultiplier = 3

	PoisonChance  = 0.20
	PoisonPercent = 20
	PoisonTurns   = 3

	BurnChance  = 0.15
	BurnPercent = 15
	BurnTurns   = 2
)

// Hit is one landed attack before the attacker's archetype mechanic.
type Hit struct {
	Raw      int64
	Critical bool
}

// ArchetypeResult is the hit after the archetype mechanic ran.
type ArchetypeResult struct {
	Damage int64
	Note   string // empty when the mechanic did nothing visible
}

// ApplyArchetype runs the attacker's archetype mechanic for one landed hit.
// state belongs to the attacker (nil for monsters), defender holds the
// defender's pending status effects.
func ApplyArchetype(a model.Archetype, hit Hit, state *model.EncounterState, defender *model.StatusList, src rng.Source) ArchetypeResult {
	switch a {
	case model.ArchetypeBerserker:
		return applySecondWind(hit, state)
	case model.ArchetypeAssassin:
		if hit.Critical {
			return ArchetypeResult{
				Damage: hit.Raw * AssassinCritMultiplier,
				Note:   "assassin strike",
			}
		}
	case model.ArchetypeVenomancer:
		return inflict(hit, defender, src, model.StatusPoison, PoisonChance, PoisonPercent, PoisonTurns)
	case model.ArchetypePyromancer:
		return inflict(hit, defender, src, model.StatusBurn, BurnChance, BurnPercent, BurnTurns)
	}
	return ArchetypeResult{Damage: hit.Raw}
}

// applySecondWind counts landed hits. The hit that reaches ComboThreshold
// opens second wind, which doubles it and the next hits until
// model.SecondWindHits boosted hits are spent; then the combo resets.
func applySecondWind(hit Hit, state *model.EncounterState) ArchetypeResult {
	if state == nil {
		return ArchetypeResult{Damage: hit.Raw}
	}

	var note string
	if !state.SecondWindActive {
		state.ComboCount++
		if state.ComboCount < ComboThreshold {
			return ArchetypeResult{Damage: hit.Raw}
		}
		state.SecondWindActive = true
		state.SecondWindTurnsLeft = model.SecondWindHits
		note = "second wind"
	}

	damage := hit.Raw * SecondWindMultiplier
	state.SecondWindTurnsLeft--
	if state.SecondWindTurnsLeft <= 0 {
		state.SecondWindActive = false
		state.SecondWindTurnsLeft = 0
		state.ComboCount = 0
		if note == "" {
			note = "second wind fades"
		}
	}
	if note == "" {
		note = fmt.Sprintf("second wind x%d", SecondWindMultiplier)
	}
	return ArchetypeResult{Damage: damage, Note: note}
}

func inflict(hit Hit, defender *model.StatusList, src rng.Source, kind model.StatusKind, chance float64, percent int64, turns int32) ArchetypeResult {
	res := ArchetypeResult{Damage: hit.Raw}
	if defender == nil || !rng.Chance(src, chance) {
		return res
	}
	magnitude := hit.Raw * percent / 100
	if magnitude <= 0 {
		return res
	}
	defender.Add(model.StatusEffect{
		Kind:           kind,
		Magnitude:      magnitude,
		RemainingTurns: turns,
		Source:         "archetype",
	})
	res.Note = fmt.Sprintf("inflicts %s (%d for %d turns)", kind, magnitude, turns)
	return res
}
