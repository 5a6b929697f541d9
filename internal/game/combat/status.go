package combat

import (
	"fmt"

	"github.com/udisondev/streakarena/internal/model"
)

// TickResult is the owner's state after one status tick.
type TickResult struct {
	HP       int64
	Messages []string
	// Stunned is set when a STUN effect was pending at tick time.
	Stunned bool
}

// TickStatus applies the owner's pending effects once: POISON and BURN
// subtract, HEAL_OVER_TIME adds, STUN marks the turn. All deltas are summed
// and clamped once, so the outcome does not depend on effect order and a heal
// cannot lift a lethal tick above zero. Every effect loses one remaining turn
// and expired effects are pruned. HP stays in [0, maxHP].
func TickStatus(owner string, effects *model.StatusList, hp, maxHP int64) TickResult {
	res := TickResult{HP: model.ClampHP(hp, maxHP)}
	if effects == nil || effects.Len() == 0 {
		return res
	}

	var damage, heal int64
	effects.Each(func(e *model.StatusEffect) {
		switch e.Kind {
		case model.StatusPoison, model.StatusBurn:
			damage += e.Magnitude
			res.Messages = append(res.Messages,
				fmt.Sprintf("%s takes %d %s damage", owner, e.Magnitude, kindVerb(e.Kind)))
		case model.StatusHealOverTime:
			heal += e.Magnitude
			res.Messages = append(res.Messages,
				fmt.Sprintf("%s regenerates %d HP", owner, e.Magnitude))
		case model.StatusStun:
			res.Stunned = true
			res.Messages = append(res.Messages, fmt.Sprintf("%s is stunned", owner))
		}
		e.RemainingTurns--
	})

	res.HP = model.ClampHP(res.HP-damage+heal, maxHP)
	return res
}

func kindVerb(k model.StatusKind) string {
	if k == model.StatusBurn {
		return "burn"
	}
	return "poison"
}
