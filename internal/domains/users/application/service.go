package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Apurer/go-storefront-api/internal/domains/users/domain"
	"github.com/Apurer/go-storefront-api/internal/domains/users/ports"
)

// DefaultSessionTTL is how long a login stays valid.
const DefaultSessionTTL = 7 * 24 * time.Hour

// Service exposes user bounded context use cases.
type Service struct {
	repo     ports.Repository
	sessions ports.SessionStore
	ttl      time.Duration
	now      func() time.Time
	newID    func() string
}

type Option func(*Service)

func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock overrides the time source for deterministic testing.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(repo ports.Repository, sessions ports.SessionStore, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		sessions: sessions,
		ttl:      DefaultSessionTTL,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Service) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, *domain.Session, error) {
	user, err := domain.NewUser(s.newID(), input.Username, input.Email, input.FirstName, input.LastName)
	if err != nil {
		return nil, nil, mapError(err)
	}
	if err := user.SetPassword(input.Password); err != nil {
		return nil, nil, mapError(err)
	}
	if err := s.ensureAvailable(ctx, user); err != nil {
		return nil, nil, mapError(err)
	}
	now := s.now()
	user.CreatedAt = now
	user.UpdatedAt = now
	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, nil, mapError(err)
	}
	session, err := s.openSession(ctx, created.ID)
	if err != nil {
		return nil, nil, err
	}
	return created, session, nil
}

func (s *Service) ensureAvailable(ctx context.Context, user *domain.User) error {
	if _, err := s.repo.GetByUsername(ctx, user.Username); err == nil {
		return ErrUsernameTaken
	} else if !errors.Is(err, ports.ErrNotFound) {
		return err
	}
	if _, err := s.repo.GetByEmail(ctx, user.Email); err == nil {
		return ErrEmailTaken
	} else if !errors.Is(err, ports.ErrNotFound) {
		return err
	}
	return nil
}

// Login never reveals whether the username exists.
func (s *Service) Login(ctx context.Context, username, password string) (*domain.User, *domain.Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, nil, ErrAuthentication
	}
	user, err := s.repo.GetByUsername(ctx, username)
	if errors.Is(err, ports.ErrNotFound) {
		return nil, nil, ErrAuthentication
	}
	if err != nil {
		return nil, nil, err
	}
	if !user.CheckPassword(password) {
		return nil, nil, ErrAuthentication
	}
	session, err := s.openSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return nil
	}
	return s.sessions.Delete(ctx, token)
}

func (s *Service) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrAuthentication
	}
	session, err := s.sessions.Get(ctx, token)
	if err != nil {
		return nil, mapError(err)
	}
	if session.Expired(s.now()) {
		_ = s.sessions.Delete(ctx, token)
		return nil, ErrAuthentication
	}
	user, err := s.repo.GetByID(ctx, session.UserID)
	if errors.Is(err, ports.ErrNotFound) {
		return nil, ErrAuthentication
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) openSession(ctx context.Context, userID string) (*domain.Session, error) {
	session, err := domain.NewSession(userID, s.now(), s.ttl)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

var _ ports.Service = (*Service)(nil)
