package session

import (
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
)

// Session is one logged-in guardian's interactive state. The cache is
// exclusively owned by the session; nothing is shared across sessions.
type Session struct {
	ID     string
	UserID int64
	Name   string
	Cache  Cache
}

// Manager tracks active sessions by id. Backed by a bounded LRU so
// abandoned sessions eventually fall out instead of accumulating for the
// lifetime of the process.
type Manager struct {
	sessions *lru.Cache[string, *Session]
}

// NewManager constructs a Manager holding at most capacity sessions.
func NewManager(capacity int) (*Manager, error) {
	if capacity <= 0 {
		capacity = 1024
	}
	cache, err := lru.New[string, *Session](capacity)
	if err != nil {
		return nil, err
	}
	return &Manager{sessions: cache}, nil
}

// Create starts a new session for the given user.
func (m *Manager) Create(userID int64, name string) *Session {
	s := &Session{
		ID:     uuid.NewString(),
		UserID: userID,
		Name:   name,
	}
	m.sessions.Add(s.ID, s)
	return s
}

// Get returns the session with the given id, if still active.
func (m *Manager) Get(id string) (*Session, bool) {
	if id == "" {
		return nil, false
	}
	return m.sessions.Get(id)
}

// Delete ends a session and discards its cache.
func (m *Manager) Delete(id string) {
	if s, ok := m.sessions.Peek(id); ok {
		s.Cache.Clear()
	}
	m.sessions.Remove(id)
}

// Len reports the number of active sessions.
func (m *Manager) Len() int {
	return m.sessions.Len()
}
