package store

import (
	"sort"
	"sync"
)

// Memory is an in-process blob store with the same surface as LocalStorage.
// Used by tests and by `daydream state` dry runs.
type Memory struct {
	mu    sync.RWMutex
	blobs map[string][]byte
	saves int
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{blobs: make(map[string][]byte)}
}

// Load returns a copy of the blob stored under name.
func (m *Memory) Load(name string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.blobs[name]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Save stores a copy of value under name.
func (m *Memory) Save(name string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[name] = append([]byte(nil), value...)
	m.saves++
	return nil
}

// Remove deletes name.
func (m *Memory) Remove(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, name)
	return nil
}

// Keys lists stored names in sorted order.
func (m *Memory) Keys() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.blobs))
	for k := range m.blobs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Clear deletes every blob.
func (m *Memory) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs = make(map[string][]byte)
	return nil
}

// Saves reports how many writes have happened.
func (m *Memory) Saves() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saves
}

// Close is a no-op.
func (m *Memory) Close() error { return nil }
