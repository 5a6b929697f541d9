package battle

import (
	"context"
	"slices"
	"sync"

	"golang.org/x/sync/semaphore"
)

// lockEntry is one character's lock. refs counts holders and waiters;
// the entry is dropped from the map when it reaches zero.
type lockEntry struct {
	sem  *semaphore.Weighted
	refs int
}

// Locks serialises encounters per character.
// Thread-safe for concurrent access.
type Locks struct {
	mu      sync.Mutex
	entries map[int64]*lockEntry // characterID → lock
}

// NewLocks creates an empty lock set.
func NewLocks() *Locks {
	return &Locks{entries: make(map[int64]*lockEntry, 64)}
}

func (l *Locks) ref(id int64) *lockEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[id]
	if !ok {
		e = &lockEntry{sem: semaphore.NewWeighted(1)}
		l.entries[id] = e
	}
	e.refs++
	return e
}

func (l *Locks) unref(id int64, e *lockEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e.refs--
	if e.refs == 0 {
		delete(l.entries, id)
	}
}

// Acquire locks every id in ascending order and returns the release func.
// Blocks until all locks are held or ctx is done; on error nothing stays locked.
func (l *Locks) Acquire(ctx context.Context, ids ...int64) (release func(), err error) {
	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	type heldLock struct {
		id    int64
		entry *lockEntry
	}
	held := make([]heldLock, 0, len(sorted))
	releaseAll := func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].entry.sem.Release(1)
			l.unref(held[i].id, held[i].entry)
		}
	}

	for _, id := range sorted {
		e := l.ref(id)
		if err := e.sem.Acquire(ctx, 1); err != nil {
			l.unref(id, e)
			releaseAll()
			return nil, err
		}
		held = append(held, heldLock{id: id, entry: e})
	}

	var once sync.Once
	return func() { once.Do(releaseAll) }, nil
}

// Len returns how many characters currently hold or wait for a lock.
func (l *Locks) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
