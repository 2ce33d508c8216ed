package core

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"citizensera.com/sera/internal/config"
)

var ErrSessionNotFound = errors.New("session not found")

// Profile describes the citizen a session simulates for.
type Profile struct {
	Name             string   `json:"name"`
	ResidencyStatus  string   `json:"residency_status,omitempty"`
	Languages        []string `json:"languages,omitempty"`
	Priorities       []string `json:"priorities,omitempty"`
	SubscriptionTier string   `json:"subscription_tier,omitempty"`
}

func (p Profile) clone() Profile {
	p.Languages = slices.Clone(p.Languages)
	p.Priorities = slices.Clone(p.Priorities)
	return p
}

// Session owns the simulators of one user. Everything it schedules stops when
// it is closed.
type Session struct {
	ID        string
	Profile   Profile
	CreatedAt time.Time

	Chat         *ConversationSimulator
	Applications *ApplicationSimulator
	Events       *Hub

	sched *Scheduler

	mu       sync.Mutex
	lastSeen time.Time
	closed   bool
}

// SessionOptions configures how sessions are built.
type SessionOptions struct {
	Tuning config.SimTuning
	Clock  Clock
	// NewStrategy returns the reply and branch strategy for a new session.
	NewStrategy func() Strategy
	Lookup      BenefitLookup
	Greet       bool
	Logger      *zap.Logger
}

// NewSession builds a standalone session.
func NewSession(id string, profile Profile, opts SessionOptions) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("session_id", id))

	var strategy Strategy
	if opts.NewStrategy != nil {
		strategy = opts.NewStrategy()
	}
	if strategy == nil {
		strategy = NewRandomStrategy(0)
	}

	sched := NewScheduler(opts.Clock)
	hub := NewHub(logger)
	s := &Session{
		ID:        id,
		Profile:   profile.clone(),
		CreatedAt: sched.Now(),
		Events:    hub,
		sched:     sched,
		lastSeen:  sched.Now(),
	}
	s.Chat = NewConversationSimulator(sched, opts.Tuning.Chat, strategy, hub, logger)
	s.Applications = NewApplicationSimulator(sched, opts.Tuning.Application, strategy, opts.Lookup, hub, logger)
	if opts.Greet {
		s.Chat.Greet(profile.Name)
	}
	return s
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastSeen = s.sched.Now()
	s.mu.Unlock()
}

// LastSeen is the last time the session was looked up.
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Pending returns the number of scheduled callbacks that have not fired.
func (s *Session) Pending() int { return s.sched.Len() }

// Close stops all scheduled work and ends event subscriptions.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.sched.Close()
	s.Events.Close()
}

// SessionManager creates, tracks and expires sessions.
type SessionManager struct {
	opts   SessionOptions
	ttl    time.Duration
	logger *zap.Logger
	cron   *cron.Cron

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewSessionManager(opts SessionOptions, ttl time.Duration) *SessionManager {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Clock == nil {
		opts.Clock = WallClock()
	}
	return &SessionManager{
		opts:     opts,
		ttl:      ttl,
		logger:   opts.Logger,
		sessions: make(map[string]*Session),
	}
}

func (m *SessionManager) Create(profile Profile) *Session {
	s := NewSession(uuid.NewString(), profile, m.opts)

	m.mu.Lock()
	m.sessions[s.ID] = s
	count := len(m.sessions)
	m.mu.Unlock()

	m.logger.Info("session created", zap.String("session_id", s.ID), zap.Int("active", count))
	return s
}

// Get returns the session and marks it as used.
func (m *SessionManager) Get(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("session %q: %w", id, ErrSessionNotFound)
	}
	s.touch()
	return s, nil
}

func (m *SessionManager) Close(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("session %q: %w", id, ErrSessionNotFound)
	}
	s.Close()
	m.logger.Info("session closed", zap.String("session_id", id))
	return nil
}

func (m *SessionManager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep closes sessions idle for longer than the TTL and returns how many
// were closed. A session with an open event stream counts as in use. A zero
// TTL disables expiry.
func (m *SessionManager) Sweep() int {
	if m.ttl <= 0 {
		return 0
	}
	cutoff := m.opts.Clock.Now().Add(-m.ttl)

	var expired []*Session
	m.mu.Lock()
	for id, s := range m.sessions {
		if s.Events.Subscribers() > 0 {
			s.touch()
			continue
		}
		if s.LastSeen().Before(cutoff) {
			expired = append(expired, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range expired {
		s.Close()
	}
	if len(expired) > 0 {
		m.logger.Info("expired idle sessions", zap.Int("count", len(expired)), zap.Duration("ttl", m.ttl))
	}
	return len(expired)
}

// StartSweeper runs Sweep on the given cron schedule, e.g. "@every 1m".
func (m *SessionManager) StartSweeper(spec string) error {
	c := cron.New()
	if _, err := c.AddFunc(spec, func() { m.Sweep() }); err != nil {
		return fmt.Errorf("invalid session sweep schedule %q: %w", spec, err)
	}
	m.cron = c
	c.Start()
	m.logger.Info("session sweeper started", zap.String("schedule", spec), zap.Duration("ttl", m.ttl))
	return nil
}

// Shutdown stops the sweeper, waits for a running sweep within ctx, and
// closes every session.
func (m *SessionManager) Shutdown(ctx context.Context) error {
	var err error
	if m.cron != nil {
		select {
		case <-m.cron.Stop().Done():
		case <-ctx.Done():
			err = ctx.Err()
		}
	}

	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}
	return err
}
