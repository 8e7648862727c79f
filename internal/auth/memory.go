package auth

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/xid"
)

// MemorySessions implements SessionManager with an in-process map of
// token → session. Unlike TokenSessions, Destroy here revokes immediately:
// the token stops validating the moment it's deleted.
//
// State lives in one process, so this backend only suits single-instance
// deployments (which this application is — see the concurrency model).
type MemorySessions struct {
	mu       sync.Mutex
	sessions map[string]memorySession
	ttl      time.Duration
	now      func() time.Time // swapped out in tests to fake expiry
}

type memorySession struct {
	userID    string
	expiresAt time.Time
}

var _ SessionManager = (*MemorySessions)(nil)

// NewMemorySessions creates an empty in-memory session store.
func NewMemorySessions() *MemorySessions {
	return &MemorySessions{
		sessions: make(map[string]memorySession),
		ttl:      sessionTTL,
		now:      time.Now,
	}
}

// Create issues a random, unguessable token for the user and records it.
func (s *MemorySessions) Create(userID string) (string, error) {
	token := xid.New().String() + xid.New().String()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = memorySession{
		userID:    userID,
		expiresAt: s.now().Add(s.ttl),
	}
	return token, nil
}

// Validate looks the token up and returns the bound user id.
// Expired entries are deleted on sight.
func (s *MemorySessions) Validate(token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok {
		return "", errors.New("auth: unknown session token")
	}
	if s.now().After(sess.expiresAt) {
		delete(s.sessions, token)
		return "", errors.New("auth: session expired")
	}
	return sess.userID, nil
}

// Destroy removes the session. Destroying an unknown token is a no-op.
func (s *MemorySessions) Destroy(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}
