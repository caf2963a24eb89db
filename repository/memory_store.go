// file: repository/memory_store.go

package repository

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"minibank/model"
)

// MemoryStore is an in-process KeyedStore. It keeps the entities themselves,
// not copies, so a lookup returns the same value that was added.
type MemoryStore[K cmp.Ordered, T any] struct {
	mu       sync.RWMutex
	keyOf    func(T) K
	entities map[K]T
}

// NewMemoryStore creates an empty store that derives each entity's key with keyOf.
func NewMemoryStore[K cmp.Ordered, T any](keyOf func(T) K) *MemoryStore[K, T] {
	return &MemoryStore[K, T]{
		keyOf:    keyOf,
		entities: make(map[K]T),
	}
}

// NewMemoryAccountStore creates an empty in-memory AccountStore.
func NewMemoryAccountStore() *MemoryStore[int, *model.Account] {
	return NewMemoryStore(AccountKey)
}

func (s *MemoryStore[K, T]) Add(entity T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := s.keyOf(entity)
	if _, exists := s.entities[key]; exists {
		return fmt.Errorf("%w: key %v", model.ErrAlreadyExists, key)
	}
	s.entities[key] = entity
	return nil
}

// Remove deletes the entity's key. Removing an absent key is a no-op.
func (s *MemoryStore[K, T]) Remove(entity T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entities, s.keyOf(entity))
	return nil
}

func (s *MemoryStore[K, T]) GetByID(id K) (T, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entity, ok := s.entities[id]
	return entity, ok, nil
}

// GetAll returns every entity ordered by key.
func (s *MemoryStore[K, T]) GetAll() ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]K, 0, len(s.entities))
	for k := range s.entities {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	out := make([]T, 0, len(keys))
	for _, k := range keys {
		out = append(out, s.entities[k])
	}
	return out, nil
}

func (s *MemoryStore[K, T]) Count() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entities), nil
}

// Update replaces the stored entity under its key.
func (s *MemoryStore[K, T]) Update(entity T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := s.keyOf(entity)
	if _, exists := s.entities[key]; !exists {
		return fmt.Errorf("%w: key %v", model.ErrNotFound, key)
	}
	s.entities[key] = entity
	return nil
}

var _ AccountStore = (*MemoryStore[int, *model.Account])(nil)
