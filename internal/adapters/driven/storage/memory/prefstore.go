package memory

import (
	"sync"

	"github.com/custodia-labs/covidstats/internal/core/ports/driven"
)

// Ensure PreferenceStore implements the interface.
var _ driven.PreferenceStore = (*PreferenceStore)(nil)

// PreferenceStore is an in-memory implementation of driven.PreferenceStore.
type PreferenceStore struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewPreferenceStore creates a new in-memory preference store.
func NewPreferenceStore() *PreferenceStore {
	return &PreferenceStore{
		values: make(map[string]any),
	}
}

// Get retrieves a value by key.
func (s *PreferenceStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.values[key]
	return val, ok
}

// GetString retrieves a string value.
func (s *PreferenceStore) GetString(key string) string {
	val, ok := s.Get(key)
	if !ok {
		return ""
	}
	if str, ok := val.(string); ok {
		return str
	}
	return ""
}

// Set stores a value.
func (s *PreferenceStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// Load is a no-op for the in-memory store.
func (s *PreferenceStore) Load() error {
	return nil
}

// Path returns a placeholder since the store is not file-backed.
func (s *PreferenceStore) Path() string {
	return ":memory:"
}
