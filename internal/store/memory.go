package store

import (
	"sync"
)

// MemoryStore is an in-memory implementation of [Store].
type MemoryStore struct {
	mu       sync.RWMutex
	last     Cycle
	recorded bool
}

// NewMemoryStore creates an empty [MemoryStore].
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Record stores a copy of cycle, replacing the previous one.
func (m *MemoryStore) Record(cycle Cycle) {
	cycle.Targets = copyTargets(cycle.Targets)

	m.mu.Lock()
	m.last = cycle
	m.recorded = true
	m.mu.Unlock()
}

// Last returns a snapshot of the most recent cycle.
func (m *MemoryStore) Last() (Cycle, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.recorded {
		return Cycle{}, false
	}
	cycle := m.last
	cycle.Targets = copyTargets(m.last.Targets)
	return cycle, true
}

func copyTargets(targets []TargetStatus) []TargetStatus {
	out := make([]TargetStatus, len(targets))
	copy(out, targets)
	return out
}
