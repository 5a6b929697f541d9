package model

import "fmt"

// BattleLog is an ordered, append-only sequence of text entries.
type BattleLog struct {
	entries []string
}

// NewBattleLog creates an empty log with room for capacity entries.
func NewBattleLog(capacity int) *BattleLog {
	return &BattleLog{entries: make([]string, 0, capacity)}
}

// Add appends one entry.
func (l *BattleLog) Add(entry string) {
	l.entries = append(l.entries, entry)
}

// Addf appends a formatted entry.
func (l *BattleLog) Addf(format string, args ...any) {
	l.entries = append(l.entries, fmt.Sprintf(format, args...))
}

// Len returns number of entries.
func (l *BattleLog) Len() int {
	return len(l.entries)
}

// Entries returns a copy of all entries in order.
func (l *BattleLog) Entries() []string {
	out := make([]string, len(l.entries))
	copy(out, l.entries)
	return out
}
