package model

import (
	"fmt"
	"strings"
)

// Archetype is the special mechanic attached to a player character.
// Variants are mutually exclusive; ArchetypeNone carries no mechanic.
type Archetype uint8

const (
	ArchetypeNone       Archetype = iota
	ArchetypeBerserker            // combo counter, second wind at 5 hits
	ArchetypeAssassin             // critical hits amplified
	ArchetypeVenomancer           // chance to poison on hit
	ArchetypePyromancer           // chance to burn on hit
)

var archetypeNames = [...]string{
	ArchetypeNone:       "none",
	ArchetypeBerserker:  "berserker",
	ArchetypeAssassin:   "assassin",
	ArchetypeVenomancer: "venomancer",
	ArchetypePyromancer: "pyromancer",
}

func (a Archetype) String() string {
	if int(a) < len(archetypeNames) {
		return archetypeNames[a]
	}
	return fmt.Sprintf("archetype(%d)", a)
}

// ParseArchetype maps a stored name back to an Archetype.
// Empty string is ArchetypeNone.
func ParseArchetype(s string) (Archetype, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ArchetypeNone, nil
	}
	for i, name := range archetypeNames {
		if name == s {
			return Archetype(i), nil
		}
	}
	return ArchetypeNone, fmt.Errorf("unknown archetype %q", s)
}

// MarshalText implements encoding.TextMarshaler (JSON/YAML use the name).
func (a Archetype) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Archetype) UnmarshalText(text []byte) error {
	parsed, err := ParseArchetype(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
