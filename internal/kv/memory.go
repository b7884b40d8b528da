package kv

import (
	"context"
	"sync"
)

type memoryEntry struct {
	value   []byte
	version int64
}

// Memory is an in-process Store used by tests and single-host deployments.
// It provides the same conditional-write semantics as the postgres store.
type Memory struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]memoryEntry)}
}

// Get implements Store.
func (m *Memory) Get(_ context.Context, key string) ([]byte, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[key]
	if !ok {
		return nil, NoVersion, nil
	}
	value := make([]byte, len(entry.value))
	copy(value, entry.value)
	return value, entry.version, nil
}

// PutIfUnchanged implements Store.
func (m *Memory) PutIfUnchanged(_ context.Context, key string, value []byte, version int64) (int64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[key]
	current := NoVersion
	if ok {
		current = entry.version
	}
	if current != version {
		return NoVersion, false, nil
	}

	stored := make([]byte, len(value))
	copy(stored, value)
	next := current + 1
	m.entries[key] = memoryEntry{value: stored, version: next}
	return next, true, nil
}

var _ Store = (*Memory)(nil)
