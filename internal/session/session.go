// Package session keeps one theme animation per visitor session.
//
// A Manager is built once at startup and handed to every consumer. Looking up a
// session that was never started, or that has expired, fails with
// ErrNotInitialized rather than silently creating state.
package session

import (
	"crypto/rand"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/Zachkp/portfolio/internal/clock"
	"github.com/Zachkp/portfolio/internal/theme"
)

// ErrNotInitialized is returned when session state is requested for a session
// that has not been started.
var ErrNotInitialized = errors.New("session not initialized")

// Session is the per-visitor context: its ID and theme animation.
type Session struct {
	ID       string
	Animator *theme.Animator
	Created  time.Time

	mu       sync.Mutex
	lastSeen time.Time
}

// Controller returns the session's theme controller.
func (s *Session) Controller() *theme.Controller {
	return s.Animator.Controller()
}

// LastSeen returns when the session was last used.
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

// end stops the animation and closes any open state streams.
func (s *Session) end() {
	s.Animator.Close()
	s.Controller().CloseSubscriptions()
}

// Config holds the dependencies every new session is built from.
type Config struct {
	Themes    theme.ThemeSet
	Clock     clock.Clock
	Animation theme.Options
	Frame     time.Duration
	Logger    *slog.Logger
}

// Manager owns all live sessions.
type Manager struct {
	cfg    Config
	logger *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
	closed   bool
}

// NewManager validates cfg and returns an empty Manager.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.Themes.Len() == 0 {
		return nil, theme.ErrEmptyThemeSet
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.Real()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Animation.Logger == nil {
		cfg.Animation.Logger = cfg.Logger
	}

	return &Manager{
		cfg:      cfg,
		logger:   cfg.Logger,
		sessions: make(map[string]*Session),
	}, nil
}

// Start creates a new session with an idle theme animation.
func (m *Manager) Start() (*Session, error) {
	now := m.cfg.Clock.Now()
	id, err := ulid.New(ulid.Timestamp(now), rand.Reader)
	if err != nil {
		return nil, err
	}

	ctrl := theme.NewController(m.cfg.Themes, m.cfg.Clock, m.cfg.Animation)
	s := &Session{
		ID:       id.String(),
		Animator: theme.NewAnimator(ctrl, m.cfg.Clock, m.cfg.Frame),
		Created:  now,
		lastSeen: now,
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		s.Animator.Close()
		return nil, ErrNotInitialized
	}
	m.sessions[s.ID] = s

	m.logger.Debug("session started", "id", s.ID)
	return s, nil
}

// Get returns the session for id and marks it as used.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotInitialized
	}
	s.touch(m.cfg.Clock.Now())
	return s, nil
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep ends sessions idle for longer than maxIdle and returns how many ended.
// Sessions with an animation in flight are kept.
func (m *Manager) Sweep(maxIdle time.Duration) int {
	cutoff := m.cfg.Clock.Now().Add(-maxIdle)

	m.mu.Lock()
	var expired []*Session
	for id, s := range m.sessions {
		if s.LastSeen().Before(cutoff) && !s.Controller().Animating() {
			expired = append(expired, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range expired {
		s.end()
	}
	if len(expired) > 0 {
		m.logger.Debug("sessions expired", "count", len(expired))
	}
	return len(expired)
}

// RunSweeper calls Sweep every interval until stop is closed.
func (m *Manager) RunSweeper(interval, maxIdle time.Duration, stop <-chan struct{}) {
	t := m.cfg.Clock.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-stop:
			return
		case <-t.C():
			m.Sweep(maxIdle)
		}
	}
}

// Close ends every session and closes their state streams. Start fails
// afterwards.
func (m *Manager) Close() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*Session)
	m.closed = true
	m.mu.Unlock()

	for _, s := range sessions {
		s.end()
	}
}
