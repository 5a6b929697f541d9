package model

import (
	"fmt"
	"strings"
)

// StatusKind is a turn-decaying combat modifier.
type StatusKind uint8

const (
	StatusPoison StatusKind = iota + 1
	StatusBurn
	StatusStun
	StatusHealOverTime
)

func (k StatusKind) String() string {
	switch k {
	case StatusPoison:
		return "POISON"
	case StatusBurn:
		return "BURN"
	case StatusStun:
		return "STUN"
	case StatusHealOverTime:
		return "HEAL_OVER_TIME"
	default:
		return fmt.Sprintf("STATUS(%d)", k)
	}
}

// ParseStatusKind is the inverse of StatusKind.String.
func ParseStatusKind(s string) (StatusKind, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "POISON":
		return StatusPoison, nil
	case "BURN":
		return StatusBurn, nil
	case "STUN":
		return StatusStun, nil
	case "HEAL_OVER_TIME":
		return StatusHealOverTime, nil
	}
	return 0, fmt.Errorf("unknown status kind %q", s)
}

func (k StatusKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *StatusKind) UnmarshalText(text []byte) error {
	parsed, err := ParseStatusKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// StatusEffect is one pending effect on a combatant.
// RemainingTurns decrements once per owner turn; removed at <= 0.
type StatusEffect struct {
	Kind           StatusKind `json:"kind"`
	Magnitude      int64      `json:"magnitude"`
	RemainingTurns int32      `json:"remaining_turns"`
	Source         string     `json:"source"`
}

// Expired reports whether the effect should be pruned.
func (e StatusEffect) Expired() bool {
	return e.RemainingTurns <= 0
}

// StatusList holds the pending effects of one combatant.
type StatusList struct {
	effects []StatusEffect
}

// NewStatusList copies effects into a new list, dropping expired ones.
func NewStatusList(effects []StatusEffect) *StatusList {
	l := &StatusList{effects: make([]StatusEffect, 0, len(effects))}
	for _, e := range effects {
		if !e.Expired() {
			l.effects = append(l.effects, e)
		}
	}
	return l
}

// Add appends an effect. Expired effects are ignored.
func (l *StatusList) Add(e StatusEffect) {
	if e.Expired() {
		return
	}
	l.effects = append(l.effects, e)
}

// Len returns number of pending effects.
func (l *StatusList) Len() int {
	return len(l.effects)
}

// Has reports whether an effect of kind is pending.
func (l *StatusList) Has(kind StatusKind) bool {
	for _, e := range l.effects {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

// Effects returns a copy of pending effects in insertion order.
func (l *StatusList) Effects() []StatusEffect {
	out := make([]StatusEffect, len(l.effects))
	copy(out, l.effects)
	return out
}

// Each calls fn with a pointer to every pending effect, then prunes expired ones.
func (l *StatusList) Each(fn func(e *StatusEffect)) {
	for i := range l.effects {
		fn(&l.effects[i])
	}
	l.Prune()
}

// Prune removes effects with RemainingTurns <= 0.
func (l *StatusList) Prune() {
	kept := l.effects[:0]
	for _, e := range l.effects {
		if !e.Expired() {
			kept = append(kept, e)
		}
	}
	l.effects = kept
}
