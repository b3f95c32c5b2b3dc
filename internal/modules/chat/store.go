// README: Session store contract and the in-memory default implementation.
package chat

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrSessionNotFound marks an unknown session ID. Lookups never create a
// session as a side effect.
var ErrSessionNotFound = errors.New("chat session not found")

// Store persists chat sessions keyed by their opaque ID. Implementations do
// not serialize writers; the Service holds a per-session lock around every
// read-modify-write cycle.
type Store interface {
	Create(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	AppendMessages(ctx context.Context, id string, msgs ...Message) error
}

// MemoryStore keeps sessions for the process lifetime. It is the default
// backend; durability across restarts is not part of the contract.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*Session)}
}

func (m *MemoryStore) Create(ctx context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = cloneSession(s)
	return nil
}

func (m *MemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return cloneSession(s), nil
}

func (m *MemoryStore) AppendMessages(ctx context.Context, id string, msgs ...Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	s.Messages = append(s.Messages, msgs...)
	s.UpdatedAt = time.Now()
	return nil
}

// cloneSession copies the session so callers never alias store-owned state.
func cloneSession(s *Session) *Session {
	c := *s
	c.Messages = make([]Message, len(s.Messages))
	copy(c.Messages, s.Messages)
	return &c
}
