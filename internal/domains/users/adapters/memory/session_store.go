package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Apurer/go-storefront-api/internal/domains/users/domain"
	"github.com/Apurer/go-storefront-api/internal/domains/users/ports"
)

var _ ports.SessionStore = (*SessionStore)(nil)

// SessionStore is an in-memory SessionStore implementation.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]domain.Session
	now      func() time.Time
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: map[string]domain.Session{}, now: time.Now}
}

// WithClock overrides the time source for deterministic testing.
func (s *SessionStore) WithClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

func (s *SessionStore) Save(_ context.Context, session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.Token] = *session
	return nil
}

// Get drops the session lazily once it has expired.
func (s *SessionStore) Get(_ context.Context, token string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[token]
	if !ok {
		return nil, ports.ErrSessionNotFound
	}
	if session.Expired(s.now()) {
		delete(s.sessions, token)
		return nil, ports.ErrSessionNotFound
	}
	return &session, nil
}

func (s *SessionStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}
