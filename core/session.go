package core

import (
	"sync"
	"time"
)

// Session is the ephemeral scratch space scoped to one workflow execution.
// It maps string keys (workflow-defined constants such as a research summary
// key) to string values and is safe for concurrent access, which matters when
// parallel steps write independent keys.
//
// Contract:
//   - State mutations update the Updated timestamp
//   - StateSnapshot returns a defensive copy to avoid external mutation
//   - A session is created fresh per workflow execution and discarded when the
//     execution ends; it is never shared across runs.
type Session struct {
	ID      string            `json:"id"`
	State   map[string]string `json:"state"`
	Created time.Time         `json:"created"`
	Updated time.Time         `json:"updated"`
	mu      sync.RWMutex
}

// NewSession creates a new empty session with the given ID.
func NewSession(id string) *Session {
	now := time.Now()
	return &Session{ID: id, State: map[string]string{}, Created: now, Updated: now}
}

// GetState returns the value and existence flag for a state key.
func (s *Session) GetState(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.State[key]
	return v, ok
}

// SetState sets a key/value pair in session state updating the Updated timestamp.
func (s *Session) SetState(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.State[key] = value
	s.Updated = time.Now()
}

// ApplyStateDelta merges the provided key/value pairs into State.
func (s *Session) ApplyStateDelta(delta map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range delta {
		s.State[k] = v
	}
	s.Updated = time.Now()
}

// StateSnapshot returns a copy of the full state map to prevent callers from
// mutating internal state.
func (s *Session) StateSnapshot() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := make(map[string]string, len(s.State))
	for k, v := range s.State {
		snap[k] = v
	}
	return snap
}

// SessionStore creates and resolves scratch sessions. Workflow drivers create
// one session per execution; stores exist mainly so tests and debugging tools
// can inspect state after a run.
type SessionStore interface {
	Create(id string) (*Session, error)
	Get(id string) (*Session, error)
}
