package flow

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/networkai/event-scout/internal/keywords"
)

// Registry is an in-memory store of onboarding sessions keyed by ID.
type Registry struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

// NewRegistry creates an empty session registry.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[uuid.UUID]*Session)}
}

// Create starts a new session with a fresh ID and the default keyword set.
func (r *Registry) Create() *Session {
	session := NewSession(uuid.New(), keywords.DefaultSet())
	r.mu.Lock()
	r.sessions[session.ID] = session
	r.mu.Unlock()
	return session
}

// Get returns the session with the given ID.
func (r *Registry) Get(id uuid.UUID) (*Session, error) {
	r.mu.RLock()
	session, exists := r.sessions[id]
	r.mu.RUnlock()
	if !exists {
		return nil, fmt.Errorf("session %s not found", id)
	}
	return session, nil
}

// Reset restores the session with the given ID to its initial state.
func (r *Registry) Reset(id uuid.UUID) error {
	session, err := r.Get(id)
	if err != nil {
		return err
	}
	session.Reset(keywords.DefaultSet())
	return nil
}

// Delete removes a session. Deleting an unknown ID is a no-op.
func (r *Registry) Delete(id uuid.UUID) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
