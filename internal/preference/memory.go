package preference

import (
	"sort"
	"strings"
	"sync"
)

// Entry is one stored preference.
type Entry struct {
	ExecutablePath string
	Preference     Preference
}

// MemoryStore keeps preferences in memory with the same case-insensitive
// keying as the registry. Used for dry runs.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]memoryValue
}

type memoryValue struct {
	path string
	data string
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]memoryValue)}
}

// SetPreference replaces any existing value for path.
func (m *MemoryStore) SetPreference(path string, p Preference) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[strings.ToLower(path)] = memoryValue{path: path, data: Encode(p)}
	return nil
}

// Get returns the preference stored for path.
func (m *MemoryStore) Get(path string) (Preference, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[strings.ToLower(path)]
	if !ok {
		return 0, false
	}
	p, err := Decode(v.data)
	if err != nil {
		return 0, false
	}
	return p, true
}

// Len returns the number of stored entries.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.values)
}

// Entries returns every stored entry sorted by path.
func (m *MemoryStore) Entries() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries := make([]Entry, 0, len(m.values))
	for _, v := range m.values {
		p, err := Decode(v.data)
		if err != nil {
			continue
		}
		entries = append(entries, Entry{ExecutablePath: v.path, Preference: p})
	}
	sort.Slice(entries, func(i, j int) bool {
		return strings.ToLower(entries[i].ExecutablePath) < strings.ToLower(entries[j].ExecutablePath)
	})
	return entries
}
