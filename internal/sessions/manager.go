package sessions

import (
	"context"
	"crypto/rand"
	"log/slog"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/joescharf/issueboard/internal/models"
)

// SeedFunc supplies the initial issues for a new session.
type SeedFunc func() []models.Issue

// Manager keeps one Page per browser session and destroys idle ones.
type Manager struct {
	seed SeedFunc
	ttl  time.Duration
	now  func() time.Time
	log  *slog.Logger

	mu       sync.Mutex
	sessions map[string]*entry
}

type entry struct {
	page     *Page
	lastSeen time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithLogger sets the logger handed to every page.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) { m.log = l }
}

// NewManager creates a session manager. Sessions idle for longer than ttl
// are removed by Sweep; a ttl of zero disables expiry.
func NewManager(seed SeedFunc, ttl time.Duration, opts ...Option) *Manager {
	m := &Manager{
		seed:     seed,
		ttl:      ttl,
		now:      time.Now,
		log:      slog.Default(),
		sessions: make(map[string]*entry),
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// newID generates a new ULID string.
func (m *Manager) newID() string {
	return ulid.MustNew(ulid.Timestamp(m.now()), rand.Reader).String()
}

// Get returns the page of session id, creating a fresh session when id is
// empty or unknown. The returned id is the one to hand back to the client.
func (m *Manager) Get(id string) (string, *Page) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if e, ok := m.sessions[id]; ok && id != "" {
		e.lastSeen = now
		return id, e.page
	}

	id = m.newID()
	page := NewPage(m.seed(), m.log)
	m.sessions[id] = &entry{page: page, lastSeen: now}
	m.log.Info("session created", "session", id)
	return id, page
}

// Lookup returns the page of an existing session without creating one.
func (m *Manager) Lookup(id string) (*Page, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = m.now()
	return e.page, true
}

// End destroys a session and its board.
func (m *Manager) End(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep removes sessions idle longer than the ttl and returns how many were removed.
func (m *Manager) Sweep() int {
	if m.ttl <= 0 {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-m.ttl)
	removed := 0
	for id, e := range m.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(m.sessions, id)
			removed++
			m.log.Info("session expired", "session", id)
		}
	}
	return removed
}

// Run sweeps every interval until ctx is cancelled.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 || m.ttl <= 0 {
		<-ctx.Done()
		return
	}
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
