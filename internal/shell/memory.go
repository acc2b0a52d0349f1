package shell

import "sync"

// MemoryMenuStore keeps verbs in memory. Used for dry runs and tests.
type MemoryMenuStore struct {
	mu      sync.Mutex
	entries map[string]Entry
}

// NewMemoryMenuStore creates an empty MemoryMenuStore.
func NewMemoryMenuStore() *MemoryMenuStore {
	return &MemoryMenuStore{entries: make(map[string]Entry)}
}

// Command returns the stored command for verb, or "" if none.
func (m *MemoryMenuStore) Command(verb string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entries[verb].Command, nil
}

// Put replaces the entry for e.Verb.
func (m *MemoryMenuStore) Put(e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[e.Verb] = e
	return nil
}

// Entry returns the stored verb.
func (m *MemoryMenuStore) Entry(verb string) (Entry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[verb]
	return e, ok
}
