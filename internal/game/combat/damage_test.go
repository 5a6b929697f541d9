package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/streakarena/internal/rng"
	"github.com/udisondev/streakarena/internal/testutil"
)

func TestDamageCalculator_Compute(t *testing.T) {
	calc := DamageCalculator{MinPlayerDamage: 2}

	tests := []struct {
		name    string
		attack  int64
		defense int64
		monster bool
		want    int64
	}{
		{"player crushing early", 50, 15, false, 85},
		{"monster weak early", 20, 30, true, 3},
		{"player floored", 1, 1000, false, 2},
		{"monster floored", 1, 1000, true, MonsterMinDamage},
		{"player equal stats", 40, 40, false, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calc.Compute(testutil.NeverSource(), tt.attack, tt.defense, tt.monster)
			assert.Equal(t, tt.want, got.Damage)
			assert.False(t, got.Critical)
			assert.Equal(t, 1.0, got.CritMultiplier)
		})
	}
}

func TestDamageCalculator_Critical(t *testing.T) {
	calc := DamageCalculator{MinPlayerDamage: 2}

	// first roll passes the crit, second misses the super crit
	src := &testutil.SeqSource{Floats: []float64{0, 0.99}}
	got := calc.Compute(src, 50, 15, false)
	require.True(t, got.Critical)
	assert.False(t, got.SuperCritical)
	assert.Equal(t, int64(127), got.Damage)

	got = calc.Compute(testutil.AlwaysSource(), 50, 15, false)
	require.True(t, got.SuperCritical)
	assert.Greater(t, got.CritMultiplier, SuperCritBaseMultiplier)
	assert.LessOrEqual(t, got.CritMultiplier, SuperCritBaseMultiplier+SuperCritMaxBonus)
	assert.Greater(t, got.Damage, int64(170))
}

func TestDamageCalculator_MonsterCritMultiplier(t *testing.T) {
	calc := DamageCalculator{}
	src := &testutil.SeqSource{Floats: []float64{0, 0.99}}

	got := calc.Compute(src, 200, 100, true)
	require.True(t, got.Critical)
	assert.Equal(t, 1.3, got.CritMultiplier)
}

func TestDamageCalculator_SoftCap(t *testing.T) {
	calc := DamageCalculator{}

	monster := calc.Compute(testutil.NeverSource(), 1_000_000_000, 0, true)
	assert.Greater(t, monster.Damage, int64(MonsterDamageCap))
	assert.Less(t, monster.Damage, int64(MonsterDamageCap+50_000))

	player := calc.Compute(testutil.NeverSource(), 1_000_000_000, 0, false)
	assert.Greater(t, player.Damage, int64(PlayerDamageCap))
	assert.Less(t, player.Damage, int64(PlayerDamageCap+50_000))
}

func TestDamageCalculator_Bounds(t *testing.T) {
	calc := DamageCalculator{MinPlayerDamage: 2}
	src := rng.New(42)

	values := []int64{0, 1, 5, 17, 99, 100, 250, 1_000, 50_000}
	for _, atk := range values {
		for _, def := range values {
			for range 20 {
				p := calc.Compute(src, atk, def, false)
				if p.Damage < 2 {
					t.Fatalf("player damage %d < min for atk=%d def=%d", p.Damage, atk, def)
				}
				m := calc.Compute(src, atk, def, true)
				if m.Damage < MonsterMinDamage {
					t.Fatalf("monster damage %d < 1 for atk=%d def=%d", m.Damage, atk, def)
				}
			}
		}
	}
}

func TestDamageCalculator_Deterministic(t *testing.T) {
	calc := DamageCalculator{MinPlayerDamage: 2}
	a, b := rng.New(7), rng.New(7)
	for range 100 {
		assert.Equal(t, calc.Compute(a, 120, 60, false), calc.Compute(b, 120, 60, false))
	}
}
