package battle

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/udisondev/streakarena/internal/model"
)

// StateStore hands out exclusive sessions over characters.
// A session reads every character once at Open and writes everything in
// one repository call at Flush.
type StateStore struct {
	repo  Repository
	locks *Locks
}

// NewStateStore creates a state store over repo.
func NewStateStore(repo Repository) *StateStore {
	return &StateStore{repo: repo, locks: NewLocks()}
}

// Session is an open encounter over one or more characters.
// Not safe for concurrent use.
type Session struct {
	store     *StateStore
	snapshots map[int64]*model.CharacterSnapshot
	release   func()
	closed    bool
}

// Open locks the characters and loads their snapshots. Corrupt encounter
// state is reset to the zero state.
func (s *StateStore) Open(ctx context.Context, ids ...int64) (*Session, error) {
	release, err := s.locks.Acquire(ctx, ids...)
	if err != nil {
		return nil, fmt.Errorf("locking characters %v: %w", ids, err)
	}

	snapshots := make(map[int64]*model.CharacterSnapshot, len(ids))
	for _, id := range ids {
		snap, err := s.repo.LoadCharacter(ctx, id)
		if err != nil {
			release()
			return nil, fmt.Errorf("loading character %d: %w", id, err)
		}
		if snap == nil {
			release()
			return nil, fmt.Errorf("character %d: %w", id, ErrCharacterNotFound)
		}
		if err := snap.State.Validate(); err != nil {
			slog.Warn("invalid encounter state, resetting",
				"characterID", id,
				"error", err)
			snap.State = model.EncounterState{}
		}
		snapshots[id] = snap
	}

	return &Session{store: s, snapshots: snapshots, release: release}, nil
}

// Snapshot returns the character read at Open, nil if it is not part of the session.
func (s *Session) Snapshot(id int64) *model.CharacterSnapshot {
	return s.snapshots[id]
}

// Flush persists the writebacks in one transaction and closes the session.
func (s *Session) Flush(ctx context.Context, writebacks ...model.Writeback) error {
	if s.closed {
		return fmt.Errorf("session already closed")
	}
	defer s.Close()

	for _, wb := range writebacks {
		if _, ok := s.snapshots[wb.CharacterID]; !ok {
			return fmt.Errorf("character %d is not part of this session", wb.CharacterID)
		}
	}
	if err := s.store.repo.SaveEncounter(ctx, writebacks...); err != nil {
		return fmt.Errorf("saving encounter: %w", err)
	}
	return nil
}

// Close releases the session locks without writing. Safe to call twice.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.release()
}
