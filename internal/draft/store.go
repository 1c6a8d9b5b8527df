package draft

import (
	"context"
	"fmt"
	"sync"
)

// ErrNotFound reports that no draft exists for the user.
var ErrNotFound = fmt.Errorf("draft: not found")

// Store holds at most one draft per authenticated user. Writes replace the
// whole tree; there is no partial update at the storage level.
type Store interface {
	Get(ctx context.Context, userID string) (Draft, error)
	Put(ctx context.Context, userID string, d Draft) error
	Delete(ctx context.Context, userID string) error
}

// MemoryStore is the default in-process Store.
type MemoryStore struct {
	mu     sync.RWMutex
	drafts map[string]Draft
}

// NewMemoryStore creates an empty in-process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{drafts: make(map[string]Draft)}
}

// Get returns a deep copy of the user's draft, or ErrNotFound.
func (s *MemoryStore) Get(_ context.Context, userID string) (Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.drafts[userID]
	if !ok {
		return Draft{}, ErrNotFound
	}
	return d.clone(), nil
}

// Put replaces the user's draft.
func (s *MemoryStore) Put(_ context.Context, userID string, d Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[userID] = d.clone()
	return nil
}

// Delete discards the user's draft. Deleting a missing draft is not an error.
func (s *MemoryStore) Delete(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, userID)
	return nil
}
