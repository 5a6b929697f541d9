// Package rng provides the randomness source used by combat and spawn code.
// Every roll in an encounter goes through a Source so a fixed seed replays
// the same battle.
package rng

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"

	"golang.org/x/crypto/blake2b"
)

// Source is the randomness provider for combat rolls.
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	// Float64 returns a pseudo-random number in [0.0, 1.0).
	Float64() float64
	// IntN returns a non-negative pseudo-random number in [0, n). Panics if n <= 0.
	IntN(n int) int
}

// New returns a deterministic source seeded with seed.
func New(seed int64) *rand.Rand {
	s := uint64(seed)
	return rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// DeriveSeed mixes a base seed with a character and streak into a stable
// per-encounter seed. Same inputs always yield the same seed.
func DeriveSeed(base, characterID, streak int64) int64 {
	var buf [24]byte
	binary.LittleEndian.PutUint64(buf[0:8], uint64(base))
	binary.LittleEndian.PutUint64(buf[8:16], uint64(characterID))
	binary.LittleEndian.PutUint64(buf[16:24], uint64(streak))
	sum := blake2b.Sum256(buf[:])
	return int64(binary.LittleEndian.Uint64(sum[:8]))
}

// Chance rolls a Bernoulli trial with probability p.
// p <= 0 never succeeds, p >= 1 always succeeds.
func Chance(src Source, p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return src.Float64() < p
}
