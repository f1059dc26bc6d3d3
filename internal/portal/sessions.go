// ABOUTME: Thread-safe TTL store for per-user navigation sessions
// ABOUTME: Expired sessions are swept by a background goroutine

package portal

import (
	"sync"
	"time"

	"github.com/2389/horizon-portal/internal/nav"
)

const historyLimit = 50

// locationHistory records pushed locations for a session, newest last.
// It doubles as the nav.History implementation.
type locationHistory struct {
	entries []string
}

func (h *locationHistory) Push(location string) {
	h.entries = append(h.entries, location)
	if len(h.entries) > historyLimit {
		h.entries = h.entries[len(h.entries)-historyLimit:]
	}
}

// Entries returns a copy of the recorded locations.
func (h *locationHistory) Entries() []string {
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}

// sessionEntry pairs a navigation session with its last-use timestamp.
// The per-entry mutex serializes navigation operations for one user.
type sessionEntry struct {
	mu       sync.Mutex
	session  *nav.Session
	history  *locationHistory
	lastSeen time.Time
}

// sessionManager tracks one navigation session per user with a TTL.
// A background goroutine periodically removes idle sessions.
type sessionManager struct {
	mu       sync.Mutex
	sessions map[string]*sessionEntry
	known    func(string) bool
	ttl      time.Duration
	done     chan struct{}
	closed   bool
}

func newSessionManager(known func(string) bool, ttl time.Duration) *sessionManager {
	m := &sessionManager{
		sessions: make(map[string]*sessionEntry),
		known:    known,
		ttl:      ttl,
		done:     make(chan struct{}),
	}
	go m.cleanup()
	return m
}

// get returns the session entry for a user, creating one at module select
// if none exists or the previous one expired.
func (m *sessionManager) get(userID string) *sessionEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.sessions[userID]
	if ok && time.Since(entry.lastSeen) < m.ttl {
		entry.lastSeen = time.Now()
		return entry
	}

	history := &locationHistory{}
	entry = &sessionEntry{
		session:  nav.NewSession(m.known, history),
		history:  history,
		lastSeen: time.Now(),
	}
	m.sessions[userID] = entry
	return entry
}

// drop removes a user's session, if any.
func (m *sessionManager) drop(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}

// cleanup runs in a background goroutine, periodically removing idle sessions.
func (m *sessionManager) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.runCleanup()
		case <-m.done:
			return
		}
	}
}

func (m *sessionManager) runCleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	for userID, entry := range m.sessions {
		if now.Sub(entry.lastSeen) > m.ttl {
			delete(m.sessions, userID)
		}
	}
}

// Close stops the background cleanup goroutine. It is safe to call multiple times.
func (m *sessionManager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.closed {
		close(m.done)
		m.closed = true
	}
}
