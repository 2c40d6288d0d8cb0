package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/localfirst-games/mazerunner/game/service"
)

// Manager handles game session lifecycle
type Manager struct {
	sessions map[string]*service.Session
	mu       sync.RWMutex
}

// NewManager creates a new session manager
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*service.Session),
	}
}

// Create registers a new session. The build callback receives the freshly
// generated session ID and returns the runtime to host under it.
func (m *Manager) Create(build func(sessionID string) *service.Runtime) (*service.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.NewString()
	if _, exists := m.sessions[id]; exists {
		return nil, fmt.Errorf("session ID collision: %s", id)
	}

	now := time.Now()
	sess := &service.Session{
		ID:             id,
		Runtime:        build(id),
		CreatedAt:      now,
		LastAccessedAt: now,
	}
	m.sessions[id] = sess
	return sess, nil
}

// Get retrieves a session by ID
func (m *Manager) Get(id string) (*service.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sess, exists := m.sessions[id]
	if !exists {
		return nil, fmt.Errorf("%w: %s", service.ErrSessionNotFound, id)
	}
	return sess, nil
}

// List returns all active sessions
func (m *Manager) List() []*service.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*service.Session, 0, len(m.sessions))
	for _, sess := range m.sessions {
		result = append(result, sess)
	}
	return result
}

// Delete removes a session and shuts its runtime down
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, exists := m.sessions[id]
	if !exists {
		return fmt.Errorf("%w: %s", service.ErrSessionNotFound, id)
	}
	sess.Runtime.Close()
	delete(m.sessions, id)
	return nil
}

// UpdateLastAccessed updates the last accessed time for a session
func (m *Manager) UpdateLastAccessed(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, exists := m.sessions[id]
	if !exists {
		return fmt.Errorf("%w: %s", service.ErrSessionNotFound, id)
	}
	sess.LastAccessedAt = time.Now()
	return nil
}

// CleanupExpiredSessions removes sessions that haven't been accessed in the
// given duration, shutting their runtimes down. Returns how many it removed.
func (m *Manager) CleanupExpiredSessions(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for id, sess := range m.sessions {
		if sess.LastAccessedAt.Before(cutoff) {
			sess.Runtime.Close()
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// Count returns the number of active sessions
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
