package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/simaogato/atm-backend/internal/domain"
)

// Manager keeps the sessions of concurrently connected clients.
// Each session still binds at most one user.
// Sessions past their expiry are evicted on lookup and by Sweep.
type Manager struct {
	dir Directory
	now func() time.Time

	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

// ManagerOption configures a Manager
type ManagerOption func(*Manager)

// WithClock sets the time source used to decide expiry
func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.now = now
	}
}

// NewManager creates a new Manager instance
func NewManager(dir Directory, opts ...ManagerOption) *Manager {
	m := &Manager{
		dir:      dir,
		now:      time.Now,
		sessions: make(map[uuid.UUID]*Session),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Open creates and tracks a new unauthenticated session
func (m *Manager) Open() *Session {
	s := New(m.dir)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[s.ID] = s
	return s
}

// Get returns a tracked session. Unknown, closed or expired sessions fail with ErrNotAuthenticated.
func (m *Manager) Get(id uuid.UUID) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: session %s not found", domain.ErrNotAuthenticated, id)
	}
	if s.Expired(m.now()) {
		m.Close(id)
		return nil, fmt.Errorf("%w: session %s expired", domain.ErrNotAuthenticated, id)
	}
	return s, nil
}

// Close logs the session out and stops tracking it.
// It reports whether the session was tracked.
func (m *Manager) Close(id uuid.UUID) bool {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if ok {
		s.Logout()
	}
	return ok
}

// Sweep closes every expired session and returns how many it closed
func (m *Manager) Sweep() int {
	now := m.now()

	m.mu.Lock()
	var expired []*Session
	for id, s := range m.sessions {
		if s.Expired(now) {
			expired = append(expired, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range expired {
		s.Logout()
	}
	return len(expired)
}

// Run sweeps expired sessions every interval until ctx is done
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep()
		}
	}
}

// Len returns the number of tracked sessions
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.sessions)
}
