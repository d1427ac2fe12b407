// Package memstore provides an in-memory store.StateStore. It backs unit
// tests and the ephemeral development mode (no database URL configured).
package memstore

import (
	"context"
	"sync"

	"github.com/solenne/arcana-api/internal/store"
)

// StateStore is a map-backed store.StateStore, safe for concurrent use.
type StateStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// New returns an empty in-memory state store.
func New() *StateStore {
	return &StateStore{values: make(map[string][]byte)}
}

var _ store.StateStore = (*StateStore)(nil)

// Get implements store.StateStore.Get.
func (s *StateStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	if !ok {
		return nil, store.ErrKeyNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Set implements store.StateStore.Set.
func (s *StateStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]byte, len(value))
	copy(stored, value)
	s.values[key] = stored
	return nil
}

// Delete implements store.StateStore.Delete.
func (s *StateStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}
