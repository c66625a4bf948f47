package domain

import (
	"crypto/rand"
	"encoding/base64"
	"time"
)

// Session binds an opaque bearer token to a user until ExpiresAt.
type Session struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
}

// NewSession issues a session with a fresh random token.
func NewSession(userID string, now time.Time, ttl time.Duration) (*Session, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return nil, err
	}
	return &Session{
		Token:     base64.RawURLEncoding.EncodeToString(buf),
		UserID:    userID,
		ExpiresAt: now.Add(ttl),
	}, nil
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
