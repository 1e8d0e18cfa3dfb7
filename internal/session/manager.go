// Package session implements the interview session engine: in-memory session
// state, the question/answer loop, and idle eviction.
package session

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abr-dev/interview-coach/internal/core"
)

var (
	ErrNotFound    = errors.New("session not found")
	ErrComplete    = errors.New("session already complete")
	ErrNotComplete = errors.New("session not complete yet")
)

// entry wraps a session with its own lock so concurrent requests against the
// same session serialize while other sessions proceed untouched.
type entry struct {
	mu sync.Mutex
	s  *core.Session
}

// Manager is the in-memory session store. Sessions have no life beyond this
// process; an idle sweeper evicts the ones nobody is talking to anymore.
type Manager struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]*entry
	idleTTL time.Duration
	logger  *slog.Logger
	done    chan struct{}
	once    sync.Once
}

// NewManager creates a session store and starts its idle sweeper.
func NewManager(idleTTL time.Duration, logger *slog.Logger) *Manager {
	m := &Manager{
		entries: make(map[uuid.UUID]*entry),
		idleTTL: idleTTL,
		logger:  logger,
		done:    make(chan struct{}),
	}
	go m.runSweeper()
	return m
}

// Stop terminates the idle sweeper.
func (m *Manager) Stop() {
	m.once.Do(func() { close(m.done) })
}

func (m *Manager) add(s *core.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[s.ID] = &entry{s: s}
}

func (m *Manager) get(id uuid.UUID) (*entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[id]
	if !ok {
		return nil, ErrNotFound
	}
	return e, nil
}

// Remove drops a session. Removing an unknown session reports ErrNotFound.
func (m *Manager) Remove(id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[id]; !ok {
		return ErrNotFound
	}
	delete(m.entries, id)
	return nil
}

// Snapshot returns a copy of the session safe to hand to callers.
func (m *Manager) Snapshot(id uuid.UUID) (*core.Session, error) {
	e, err := m.get(id)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return snapshotLocked(e.s), nil
}

// Len reports the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

func (m *Manager) runSweeper() {
	interval := m.idleTTL / 4
	if interval < time.Minute {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.sweep(time.Now())
		case <-m.done:
			return
		}
	}
}

// sweep evicts sessions idle longer than the TTL.
func (m *Manager) sweep(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, e := range m.entries {
		e.mu.Lock()
		idle := now.Sub(e.s.LastActivity)
		e.mu.Unlock()

		if idle > m.idleTTL {
			delete(m.entries, id)
			m.logger.Info("evicted idle session", "session_id", id, "idle", idle.Round(time.Second))
		}
	}
}

func snapshotLocked(s *core.Session) *core.Session {
	cp := *s
	cp.Exchanges = make([]core.Exchange, len(s.Exchanges))
	copy(cp.Exchanges, s.Exchanges)
	return &cp
}
