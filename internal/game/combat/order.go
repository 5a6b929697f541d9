package combat

import "github.com/udisondev/streakarena/internal/model"

// ResolveOrder returns the combatant that acts first. Higher Speed wins;
// equal or unset speed keeps argument order.
func ResolveOrder(a, b *model.Combatant) (faster, slower *model.Combatant) {
	if b.Speed > a.Speed {
		return b, a
	}
	return a, b
}
