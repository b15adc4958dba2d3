package server

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Yates-Labs/t6post/internal/generation"
)

// Session limits used when no Option overrides them.
const (
	DefaultSessionTTL  = 30 * time.Minute
	DefaultMaxSessions = 1000
)

var errTooManySessions = errors.New("too many active sessions")

// session is one page view: a controller plus export metadata.
type session struct {
	ctrl *generation.Controller

	// lastSeen is guarded by the store's mutex.
	lastSeen time.Time

	mu          sync.Mutex
	generatedAt time.Time
	topic       string
}

// markGenerated records the topic and time of a successful generation.
func (s *session) markGenerated(topic string, t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.topic = topic
	s.generatedAt = t
}

// lastGenerated returns the topic and time of the last successful generation.
func (s *session) lastGenerated() (string, time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.topic, s.generatedAt
}

// sessionStore holds live sessions. Sessions idle longer than ttl are
// dropped on access and whenever a new session is added.
type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]*session
	ttl      time.Duration
	max      int
	now      func() time.Time
}

func newStore(ttl time.Duration, maxSessions int) *sessionStore {
	return &sessionStore{
		sessions: make(map[string]*session),
		ttl:      ttl,
		max:      maxSessions,
		now:      time.Now,
	}
}

func (s *sessionStore) add(sess *session) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.evictLocked(now)
	if s.max > 0 && len(s.sessions) >= s.max {
		return "", errTooManySessions
	}

	id := uuid.NewString()
	sess.lastSeen = now
	s.sessions[id] = sess
	return id, nil
}

func (s *sessionStore) get(id string) (*session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	now := s.now()
	if s.idle(sess, now) {
		delete(s.sessions, id)
		return nil, false
	}
	sess.lastSeen = now
	return sess, true
}

func (s *sessionStore) remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return false
	}
	delete(s.sessions, id)
	return true
}

func (s *sessionStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// evictIdle drops idle sessions and reports how many were removed.
func (s *sessionStore) evictIdle() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.evictLocked(s.now())
}

func (s *sessionStore) evictLocked(now time.Time) int {
	n := 0
	for id, sess := range s.sessions {
		if s.idle(sess, now) {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

// idle reports whether sess has outlived the TTL. A session with a
// generation in flight is never idle.
func (s *sessionStore) idle(sess *session, now time.Time) bool {
	if s.ttl <= 0 || now.Sub(sess.lastSeen) <= s.ttl {
		return false
	}
	return !sess.ctrl.State().InFlight
}
