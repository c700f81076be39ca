package store

import (
	"sort"
	"sync"

	"github.com/aurrelhebert/warp10-zeppelin-quantumviz/internal/value"
)

// Store is the shared resource pool interpreters read from and write to.
// Each call is atomic on its own; no ordering is promised across calls.
type Store interface {
	Get(name string) (value.Value, bool)
	Put(name string, v value.Value)
	Remove(name string)
}

// Memory is an in-process Store.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]value.Value
}

// NewMemory creates an empty store.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]value.Value)}
}

// Get returns the value stored under name.
func (m *Memory) Get(name string) (value.Value, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.entries[name]
	return v, ok
}

// Put stores v under name, replacing any previous value.
func (m *Memory) Put(name string, v value.Value) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[name] = v
}

// Remove deletes name. Missing names are ignored.
func (m *Memory) Remove(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, name)
}

// Names lists stored names in sorted order.
func (m *Memory) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.entries))
	for name := range m.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of entries.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

