package testutil

import (
	"context"
	"errors"
	"math/big"
	"slices"
	"sync"

	"github.com/udisondev/streakarena/internal/model"
)

// ErrSimulated подставляется в LoadErr/SaveErr для проверки путей ошибок.
var ErrSimulated = errors.New("simulated repository failure")

// MockRepository: in-memory хранилище персонажей для unit тестов.
// Не требует реальной базы данных.
type MockRepository struct {
	mu    sync.RWMutex
	chars map[int64]*model.CharacterSnapshot
	saves int

	// SaveErr, если задан, возвращается из SaveEncounter без изменения данных.
	SaveErr error
	// LoadErr, если задан, возвращается из LoadCharacter.
	LoadErr error
}

// NewMockRepository создаёт репозиторий с копиями переданных персонажей.
func NewMockRepository(chars ...*model.CharacterSnapshot) *MockRepository {
	m := &MockRepository{chars: make(map[int64]*model.CharacterSnapshot, len(chars))}
	for _, c := range chars {
		m.chars[c.CharacterID] = CloneSnapshot(c)
	}
	return m
}

// LoadCharacter returns a copy of the stored character or nil, nil.
func (m *MockRepository) LoadCharacter(ctx context.Context, id int64) (*model.CharacterSnapshot, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.chars[id]
	if !ok {
		return nil, nil
	}
	return CloneSnapshot(c), nil
}

// SaveEncounter applies all writebacks or none.
func (m *MockRepository) SaveEncounter(ctx context.Context, writebacks ...model.Writeback) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, wb := range writebacks {
		if _, ok := m.chars[wb.CharacterID]; !ok {
			return ErrSimulated
		}
	}
	for _, wb := range writebacks {
		c := m.chars[wb.CharacterID]
		c.CurrentHP = wb.CurrentHP
		c.MaxHP = wb.MaxHP
		c.Level = wb.Level
		c.Experience = new(big.Int).Set(wb.Experience)
		c.Currency = new(big.Int).Set(wb.Currency)
		c.Streak = wb.Streak
		c.State = wb.State
		c.StatusEffects = slices.Clone(wb.StatusEffects)
		c.Buffs = slices.Clone(wb.Buffs)
	}
	m.saves++
	return nil
}

// Put stores or replaces a character.
func (m *MockRepository) Put(c *model.CharacterSnapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chars[c.CharacterID] = CloneSnapshot(c)
}

// Get returns a copy of the stored character, nil if missing.
func (m *MockRepository) Get(id int64) *model.CharacterSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.chars[id]
	if !ok {
		return nil
	}
	return CloneSnapshot(c)
}

// Saves returns how many SaveEncounter calls succeeded.
func (m *MockRepository) Saves() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saves
}

// CloneSnapshot deep-copies a snapshot.
func CloneSnapshot(c *model.CharacterSnapshot) *model.CharacterSnapshot {
	out := *c
	out.Experience = new(big.Int).Set(c.Exp())
	out.Currency = new(big.Int).Set(c.Coins())
	out.StatusEffects = slices.Clone(c.StatusEffects)
	out.Buffs = slices.Clone(c.Buffs)
	out.EquippedItems = slices.Clone(c.EquippedItems)
	return &out
}
