package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStatusList_DropsExpired(t *testing.T) {
	l := NewStatusList([]StatusEffect{
		{Kind: StatusPoison, Magnitude: 5, RemainingTurns: 2},
		{Kind: StatusBurn, Magnitude: 3, RemainingTurns: 0},
		{Kind: StatusStun, RemainingTurns: -1},
	})

	assert.Equal(t, 1, l.Len())
	assert.True(t, l.Has(StatusPoison))
	assert.False(t, l.Has(StatusBurn))
}

func TestStatusList_AddStacks(t *testing.T) {
	l := NewStatusList(nil)
	l.Add(StatusEffect{Kind: StatusPoison, Magnitude: 5, RemainingTurns: 3})
	l.Add(StatusEffect{Kind: StatusPoison, Magnitude: 7, RemainingTurns: 3})
	l.Add(StatusEffect{Kind: StatusBurn, Magnitude: 1, RemainingTurns: 0})

	effects := l.Effects()
	require.Len(t, effects, 2)
	assert.Equal(t, int64(5), effects[0].Magnitude)
	assert.Equal(t, int64(7), effects[1].Magnitude)
}

func TestStatusList_EachPrunes(t *testing.T) {
	l := NewStatusList([]StatusEffect{
		{Kind: StatusPoison, Magnitude: 5, RemainingTurns: 1},
		{Kind: StatusBurn, Magnitude: 3, RemainingTurns: 2},
	})

	l.Each(func(e *StatusEffect) { e.RemainingTurns-- })

	effects := l.Effects()
	require.Len(t, effects, 1)
	assert.Equal(t, StatusBurn, effects[0].Kind)
	assert.Equal(t, int32(1), effects[0].RemainingTurns)
}

func TestStatusList_EffectsIsCopy(t *testing.T) {
	l := NewStatusList([]StatusEffect{{Kind: StatusStun, RemainingTurns: 1}})
	effects := l.Effects()
	effects[0].RemainingTurns = 99

	assert.Equal(t, int32(1), l.Effects()[0].RemainingTurns)
}

func TestStatusKind_TextRoundTrip(t *testing.T) {
	for _, k := range []StatusKind{StatusPoison, StatusBurn, StatusStun, StatusHealOverTime} {
		parsed, err := ParseStatusKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}

	_, err := ParseStatusKind("FREEZE")
	assert.Error(t, err)

	var e StatusEffect
	require.NoError(t, json.Unmarshal([]byte(`{"kind":"burn","magnitude":4,"remaining_turns":2}`), &e))
	assert.Equal(t, StatusBurn, e.Kind)
}
