package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/streakarena/internal/model"
)

func TestResolveOrder(t *testing.T) {
	slow := &model.Combatant{Name: "slow", Speed: 5}
	fast := &model.Combatant{Name: "fast", Speed: 12}
	unset := &model.Combatant{Name: "unset"}

	tests := []struct {
		name  string
		a, b  *model.Combatant
		first *model.Combatant
	}{
		{"a faster", fast, slow, fast},
		{"b faster", slow, fast, fast},
		{"tie keeps a", slow, &model.Combatant{Speed: 5}, slow},
		{"unset speed keeps a", unset, &model.Combatant{}, unset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, second := ResolveOrder(tt.a, tt.b)
			assert.Same(t, tt.first, first)
			assert.NotSame(t, first, second)

			// same inputs, same order
			again, _ := ResolveOrder(tt.a, tt.b)
			assert.Same(t, first, again)
		})
	}
}
