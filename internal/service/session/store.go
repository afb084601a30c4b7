package session

import (
	"context"
	"sync"

	"github.com/wellchemy/wellchemy/backend/internal/model/assessment"
)

// Store abstracts session-state persistence so the engine never touches the
// backing map directly. Keys combine definition id and owner id; the store
// owns a state for the session's whole lifetime and forgets it on deletion.
type Store interface {
	Get(ctx context.Context, key string) (assessment.SessionState, bool)
	Put(ctx context.Context, key string, state assessment.SessionState)
	Delete(ctx context.Context, key string)
}

// MemoryStore implements Store with an in-memory map, suitable for a single
// process. Swapping in a durable store only requires the same three methods.
type MemoryStore struct {
	mu     sync.RWMutex
	states map[string]assessment.SessionState
}

// NewMemoryStore bootstraps the in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[string]assessment.SessionState)}
}

// Get retrieves a copy of the state for the key.
func (s *MemoryStore) Get(_ context.Context, key string) (assessment.SessionState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.states[key]
	return state, ok
}

// Put stores the state under the key, replacing any previous value.
func (s *MemoryStore) Put(_ context.Context, key string, state assessment.SessionState) {
	s.mu.Lock()
	s.states[key] = state
	s.mu.Unlock()
}

// Delete removes the state; deleting an absent key is a no-op.
func (s *MemoryStore) Delete(_ context.Context, key string) {
	s.mu.Lock()
	delete(s.states, key)
	s.mu.Unlock()
}

// Len reports how many sessions are in flight.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.states)
}
