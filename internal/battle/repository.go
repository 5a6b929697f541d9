package battle

import (
	"context"
	"errors"

	"github.com/udisondev/streakarena/internal/model"
)

// ErrCharacterNotFound is returned when a requested character does not exist.
var ErrCharacterNotFound = errors.New("character not found")

// Repository is the persistence collaborator of the arena.
type Repository interface {
	// LoadCharacter returns the full stat snapshot of a character.
	// Returns nil, nil if the character does not exist.
	LoadCharacter(ctx context.Context, id int64) (*model.CharacterSnapshot, error)

	// SaveEncounter persists all writebacks of one encounter atomically.
	SaveEncounter(ctx context.Context, writebacks ...model.Writeback) error
}
