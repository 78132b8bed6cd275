package session

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/aaronzipp/spyfall-chat/internal/logging"
	"github.com/aaronzipp/spyfall-chat/internal/timer"
)

// Manager keeps one Machine per chat. Its lock guards only the registry;
// commands run under each Machine's own lock
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Machine

	cfg     Config
	effects Effects
	store   Store
	timers  *timer.Facility
	log     zerolog.Logger
	seed    int64
	created int64
}

// Option configures a Manager
type Option func(*Manager)

// WithClock sets the clock behind the session timers
func WithClock(c timer.Clock) Option {
	return func(m *Manager) { m.timers = timer.NewFacility(c) }
}

// WithSeed makes role assignment reproducible
func WithSeed(seed int64) Option {
	return func(m *Manager) { m.seed = seed }
}

// WithLogger sets the base logger
func WithLogger(l zerolog.Logger) Option {
	return func(m *Manager) { m.log = l }
}

// NewManager validates cfg and returns an empty registry. store may be
// nil when snapshots need not be kept
func NewManager(cfg Config, effects Effects, store Store, opts ...Option) (*Manager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("session config: %w", err)
	}
	if effects == nil {
		return nil, errors.New("session: nil effects")
	}

	m := &Manager{
		sessions: make(map[string]*Machine),
		cfg:      cfg,
		effects:  effects,
		store:    store,
		timers:   timer.NewFacility(timer.Real()),
		log:      logging.L(),
		seed:     time.Now().UnixNano(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Session returns the chat's Machine, creating it on first use
func (m *Manager) Session(chatID string) *Machine {
	if s, ok := m.Lookup(chatID); ok {
		return s
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[chatID]; ok {
		return s
	}
	m.created++
	rng := rand.New(rand.NewSource(m.seed + m.created))
	s := newMachine(chatID, m.cfg, m.effects, m.store, m.timers, rng, m.log)
	s.owner = m
	m.sessions[chatID] = s
	return s
}

// Apply runs fn against the chat's Machine. Without create a chat with no
// session yields ErrNoSession. fn is run again on a fresh Machine when the
// one it got was replaced meanwhile
func (m *Manager) Apply(chatID string, create bool, fn func(*Machine) error) error {
	for {
		s, ok := m.Lookup(chatID)
		if !ok {
			if !create {
				return ErrNoSession
			}
			s = m.Session(chatID)
		}
		if err := fn(s); !errors.Is(err, errReleased) {
			return err
		}
	}
}

// forget drops s if it still holds its chat. Called with s.mu held
func (m *Manager) forget(s *Machine) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sessions[s.chatID] == s {
		delete(m.sessions, s.chatID)
	}
}

// adopt puts a released Machine back unless another took its chat
func (m *Manager) adopt(s *Machine) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cur, ok := m.sessions[s.chatID]; ok {
		return cur == s
	}
	m.sessions[s.chatID] = s
	return true
}

// Lookup returns the chat's Machine without creating one
func (m *Manager) Lookup(chatID string) (*Machine, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[chatID]
	return s, ok
}

// Config returns the deployment settings
func (m *Manager) Config() Config {
	return m.cfg
}

// Len returns the number of chats with a live session
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Shutdown cancels every pending timer so no callback fires after the
// server stops. Session state is left as is
func (m *Manager) Shutdown() {
	m.mu.RLock()
	sessions := make([]*Machine, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mu.RUnlock()

	for _, s := range sessions {
		s.mu.Lock()
		s.stopTimers()
		s.mu.Unlock()
	}
	m.log.Info().Int("sessions", len(sessions)).Msg("session timers stopped")
}
