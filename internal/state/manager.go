package state

import (
	"sync"
	"time"
)

// Session is the cached authentication session for one account.
type Session struct {
	Username        string    `json:"username"`
	AuthenticatedAt time.Time `json:"authenticated_at"`
	ExpiresAt       time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its expiry.
func (s Session) Expired() bool {
	return !s.ExpiresAt.IsZero() && time.Now().After(s.ExpiresAt)
}

// Manager caches authentication sessions so repeated checks during a range
// sync avoid re-reading token storage.
type Manager interface {
	SetSession(email string, session Session)
	GetSession(email string) (Session, bool)
	ClearSession(email string)
	Close() error
}

// MemoryManager is the in-process Manager implementation.
type MemoryManager struct {
	sessions map[string]Session
	mu       sync.RWMutex
}

// NewMemoryManager creates a new in-memory state manager
func NewMemoryManager() *MemoryManager {
	return &MemoryManager{
		sessions: make(map[string]Session),
	}
}

// SetSession stores the session for an account
func (m *MemoryManager) SetSession(email string, session Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[email] = session
}

// GetSession returns the cached session for an account. Expired sessions are
// dropped and reported as absent.
func (m *MemoryManager) GetSession(email string) (Session, bool) {
	m.mu.RLock()
	session, exists := m.sessions[email]
	m.mu.RUnlock()
	if !exists {
		return Session{}, false
	}
	if session.Expired() {
		m.ClearSession(email)
		return Session{}, false
	}
	return session, true
}

// ClearSession removes the cached session for an account
func (m *MemoryManager) ClearSession(email string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, email)
}

// Close is a no-op for the memory manager
func (m *MemoryManager) Close() error {
	return nil
}
