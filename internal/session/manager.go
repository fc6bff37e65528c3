package session

import (
	"sync"

	"github.com/sticktoon/badge-engine/internal/assets"
	"github.com/sticktoon/badge-engine/pkg/badgeformat"
)

// Manager tracks the live editing sessions.
type Manager struct {
	mu        sync.RWMutex
	sessions  map[string]*Session
	generator assets.Generator

	onOpened func(*Session)
	onClosed func(sessionID string)
}

// NewManager creates a session manager. The generator may be nil when no
// mockup service is configured.
func NewManager(generator assets.Generator) *Manager {
	return &Manager{
		sessions:  make(map[string]*Session),
		generator: generator,
	}
}

// Open creates a blank session.
func (m *Manager) Open() *Session {
	s := New(m.generator)

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	if m.onOpened != nil {
		m.onOpened(s)
	}
	return s
}

// OpenFromDesign creates a session pre-loaded with a saved design.
func (m *Manager) OpenFromDesign(design *badgeformat.Design) *Session {
	s := FromDesign(design, m.generator)

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	if m.onOpened != nil {
		m.onOpened(s)
	}
	return s
}

// Get returns a session by id, or nil.
func (m *Manager) Get(id string) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[id]
}

// Close discards a session. The model is ephemeral: nothing is persisted
// unless the caller saved a design first.
func (m *Manager) Close(id string) bool {
	m.mu.Lock()
	_, exists := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if exists && m.onClosed != nil {
		m.onClosed(id)
	}
	return exists
}

// All returns the live sessions.
func (m *Manager) All() []*Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s)
	}
	return out
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// OnSessionOpened registers a callback fired when a session opens.
func (m *Manager) OnSessionOpened(fn func(*Session)) {
	m.onOpened = fn
}

// OnSessionClosed registers a callback fired when a session closes.
func (m *Manager) OnSessionClosed(fn func(sessionID string)) {
	m.onClosed = fn
}
