package model

import (
	"fmt"
	"strings"
	"time"
)

// BuffKind selects which stat a buff modifies.
type BuffKind uint8

const (
	BuffAttack BuffKind = iota + 1
	BuffDefense
	BuffSpeed
	BuffMaxHP
)

func (k BuffKind) String() string {
	switch k {
	case BuffAttack:
		return "ATTACK"
	case BuffDefense:
		return "DEFENSE"
	case BuffSpeed:
		return "SPEED"
	case BuffMaxHP:
		return "MAX_HP"
	default:
		return fmt.Sprintf("BUFF(%d)", k)
	}
}

// ParseBuffKind is the inverse of BuffKind.String.
func ParseBuffKind(s string) (BuffKind, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ATTACK":
		return BuffAttack, nil
	case "DEFENSE":
		return BuffDefense, nil
	case "SPEED":
		return BuffSpeed, nil
	case "MAX_HP":
		return BuffMaxHP, nil
	}
	return 0, fmt.Errorf("unknown buff kind %q", s)
}

func (k BuffKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *BuffKind) UnmarshalText(text []byte) error {
	parsed, err := ParseBuffKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ActiveBuff is a wall-clock stat modifier created by items or exploration.
// Unlike StatusEffect it does not decay per turn.
type ActiveBuff struct {
	Kind      BuffKind  `json:"kind"`
	Magnitude int64     `json:"magnitude"`
	ExpiresAt time.Time `json:"expires_at"`
	Source    string    `json:"source"`
}

// Expired reports whether the buff is no longer active at now.
func (b ActiveBuff) Expired(now time.Time) bool {
	return !now.Before(b.ExpiresAt)
}

// PruneBuffs returns the buffs still active at now. Input is not modified.
func PruneBuffs(buffs []ActiveBuff, now time.Time) []ActiveBuff {
	out := make([]ActiveBuff, 0, len(buffs))
	for _, b := range buffs {
		if !b.Expired(now) {
			out = append(out, b)
		}
	}
	return out
}
