package testutil

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/udisondev/streakarena/internal/data"
	"github.com/udisondev/streakarena/internal/model"
)

// NewSnapshot returns a mid-level character that reliably beats
// early monsters and loses to nothing below level 20.
func NewSnapshot(id int64, name string) *model.CharacterSnapshot {
	return &model.CharacterSnapshot{
		CharacterID: id,
		Name:        name,
		Level:       15,
		CurrentHP:   5_000,
		MaxHP:       5_000,
		Attack:      400,
		Defense:     200,
		Speed:       50,
		Experience:  big.NewInt(data.GetExpForLevel(15)),
		Currency:    big.NewInt(0),
	}
}

// ContextWithTimeout bounds a test's repository and service calls.
func ContextWithTimeout(t testing.TB, d time.Duration) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), d)
	t.Cleanup(cancel)
	return ctx
}
