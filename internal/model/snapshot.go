package model

import "math/big"

// CharacterSnapshot is the full stat read of one character taken at encounter start.
type CharacterSnapshot struct {
	CharacterID   int64
	Name          string
	Level         int32
	CurrentHP     int64
	MaxHP         int64
	Attack        int64
	Defense       int64
	Speed         int64
	Archetype     Archetype
	Experience    *big.Int
	Currency      *big.Int
	Streak        int64
	State         EncounterState
	StatusEffects []StatusEffect
	Buffs         []ActiveBuff
	EquippedItems []int32
}

// Writeback is everything persisted for one character after an encounter.
// Applied as a single transaction together with the opponent's writeback.
type Writeback struct {
	CharacterID   int64
	CurrentHP     int64
	MaxHP         int64
	Level         int32
	Experience    *big.Int
	Currency      *big.Int
	Streak        int64
	State         EncounterState
	StatusEffects []StatusEffect
	Buffs         []ActiveBuff
}

// Exp returns Experience or zero when unset.
func (s *CharacterSnapshot) Exp() *big.Int {
	if s.Experience == nil {
		return new(big.Int)
	}
	return s.Experience
}

// Coins returns Currency or zero when unset.
func (s *CharacterSnapshot) Coins() *big.Int {
	if s.Currency == nil {
		return new(big.Int)
	}
	return s.Currency
}
