package session

import (
	"fmt"
	"sync"

	"github.com/pyaichatbot/adk-demo/core"
)

// InMemoryStore is a volatile SessionStore implementation keeping sessions in
// a process local map. It is safe for concurrent access and suited to the
// ephemeral, per-request scratch scopes this backend uses. No global session
// registry is shared across unrelated runs; each workflow execution creates
// its own entry and nothing ever reads another run's state.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*core.Session
}

// NewInMemoryStore constructs an empty in-memory session store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{sessions: make(map[string]*core.Session)}
}

// Create allocates a fresh session under the given id, overwriting any
// previous session with the same id.
func (s *InMemoryStore) Create(id string) (*core.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := core.NewSession(id)
	s.sessions[id] = sess
	return sess, nil
}

// Get returns an existing session or an error if the id is unknown.
func (s *InMemoryStore) Get(id string) (*core.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session %s not found", id)
	}
	return sess, nil
}

// Delete removes a session once its workflow execution has completed.
func (s *InMemoryStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}
