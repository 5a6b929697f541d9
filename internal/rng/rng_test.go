package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Deterministic(t *testing.T) {
	a := New(42)
	b := New(42)
	for range 100 {
		require.Equal(t, a.IntN(1000), b.IntN(1000))
	}
}

func TestNew_DifferentSeeds(t *testing.T) {
	a := New(1)
	b := New(2)
	same := 0
	for range 50 {
		if a.IntN(1_000_000) == b.IntN(1_000_000) {
			same++
		}
	}
	assert.Less(t, same, 50)
}

func TestDeriveSeed(t *testing.T) {
	assert.Equal(t, DeriveSeed(7, 100, 3), DeriveSeed(7, 100, 3))
	assert.NotEqual(t, DeriveSeed(7, 100, 3), DeriveSeed(7, 100, 4))
	assert.NotEqual(t, DeriveSeed(7, 100, 3), DeriveSeed(7, 101, 3))
}

func TestNewSeed(t *testing.T) {
	a, err := NewSeed()
	require.NoError(t, err)
	b, err := NewSeed()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

// fixedSource returns the same Float64 value every call.
type fixedSource float64

func (f fixedSource) Float64() float64 { return float64(f) }
func (f fixedSource) IntN(n int) int   { return 0 }

func TestChance(t *testing.T) {
	tests := []struct {
		name string
		roll float64
		p    float64
		want bool
	}{
		{"zero probability", 0, 0, false},
		{"certain", 0.999, 1, true},
		{"roll below p", 0.19, 0.2, true},
		{"roll equal p", 0.2, 0.2, false},
		{"roll above p", 0.5, 0.2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Chance(fixedSource(tt.roll), tt.p))
		})
	}
}
