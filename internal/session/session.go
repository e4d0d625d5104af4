package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session associates an opaque token with an authenticated user.
type Session struct {
	Token     string
	UserID    int64
	ExpiresAt time.Time
}

// Manager is an in-process session store. Expired sessions are dropped
// lazily on read and by the background sweep.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]Session
	ttl      time.Duration
}

func NewManager(ttl time.Duration) *Manager {
	return &Manager{
		sessions: make(map[string]Session),
		ttl:      ttl,
	}
}

func (m *Manager) Create(userID int64) Session {
	s := Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(m.ttl),
	}

	m.mu.Lock()
	m.sessions[s.Token] = s
	m.mu.Unlock()
	return s
}

func (m *Manager) Get(token string) (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[token]
	if !ok {
		return Session{}, false
	}
	if time.Now().After(s.ExpiresAt) {
		delete(m.sessions, token)
		return Session{}, false
	}
	return s, true
}

func (m *Manager) Destroy(token string) {
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()
}

// Prune removes expired sessions and reports how many were dropped.
func (m *Manager) Prune() int {
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	dropped := 0
	for token, s := range m.sessions {
		if now.After(s.ExpiresAt) {
			delete(m.sessions, token)
			dropped++
		}
	}
	return dropped
}

// Sweep prunes on the given interval until the context is cancelled.
func (m *Manager) Sweep(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.Prune()
		case <-ctx.Done():
			return
		}
	}
}
