package server

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lamim/prdforge/internal/wizard"
)

var (
	// ErrSessionNotFound is returned for an unknown session id
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionLimit is returned when the store is full
	ErrSessionLimit = errors.New("session limit reached")
)

// ControllerFactory builds the controller of a new session wired to its observer
type ControllerFactory func(observer wizard.Observer) *wizard.Controller

type storedSession struct {
	controller *wizard.Controller
	lastAccess time.Time
}

// Store holds the in-memory wizard sessions. Sessions are never persisted;
// a session nobody touched for idle is dropped by Sweep.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*storedSession
	max      int
	idle     time.Duration
	factory  ControllerFactory
	bus      *EventBus
	now      func() time.Time
}

// NewStore creates a session store holding at most max sessions
func NewStore(max int, idle time.Duration, factory ControllerFactory, bus *EventBus) *Store {
	return &Store{
		sessions: make(map[string]*storedSession),
		max:      max,
		idle:     idle,
		factory:  factory,
		bus:      bus,
		now:      time.Now,
	}
}

// Create starts a new session and returns its id. A full store first drops
// its idle sessions.
func (s *Store) Create() (string, *wizard.Controller, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.sessions) >= s.max {
		s.sweepLocked()
	}
	if len(s.sessions) >= s.max {
		return "", nil, ErrSessionLimit
	}

	id := uuid.NewString()
	c := s.factory(wizard.ObserverFunc(func(e wizard.Event) {
		s.bus.Publish(id, e)
	}))
	s.sessions[id] = &storedSession{controller: c, lastAccess: s.now()}
	return id, c, nil
}

// Get returns the controller of a session and marks it as used
func (s *Store) Get(id string) (*wizard.Controller, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	sess.lastAccess = s.now()
	return sess.controller, nil
}

// Delete drops a session and disconnects its subscribers
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	s.bus.CloseSession(id)
	return nil
}

// Sweep drops sessions idle for longer than the idle timeout and returns
// their ids. Busy sessions and sessions with live subscribers are kept.
func (s *Store) Sweep() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweepLocked()
}

func (s *Store) sweepLocked() []string {
	if s.idle <= 0 {
		return nil
	}

	cutoff := s.now().Add(-s.idle)
	var swept []string
	for id, sess := range s.sessions {
		if sess.lastAccess.After(cutoff) {
			continue
		}
		if sess.controller.Busy() || s.bus.Subscribers(id) > 0 {
			continue
		}
		delete(s.sessions, id)
		s.bus.CloseSession(id)
		swept = append(swept, id)
	}
	return swept
}

// Len returns the number of held sessions
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
