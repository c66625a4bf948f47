package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Apurer/go-storefront-api/internal/domains/users/domain"
	userports "github.com/Apurer/go-storefront-api/internal/domains/users/ports"
	platformpostgres "github.com/Apurer/go-storefront-api/internal/platform/postgres"
)

// SessionStore persists user sessions in PostgreSQL.
type SessionStore struct {
	db  *gorm.DB
	now func() time.Time
}

// NewSessionStore wires a PostgreSQL-backed session store. Caller owns DB lifecycle.
func NewSessionStore(db *gorm.DB) *SessionStore {
	return &SessionStore{db: db, now: time.Now}
}

type sessionRecord struct {
	Token     string     `gorm:"primaryKey;column:token;size:512"`
	UserID    string     `gorm:"column:user_id;type:uuid"`
	ExpiresAt *time.Time `gorm:"column:expires_at"`
	CreatedAt time.Time  `gorm:"column:created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at"`
}

func (sessionRecord) TableName() string { return "user_sessions" }

func (s *SessionStore) Save(ctx context.Context, session *domain.Session) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	if session == nil || strings.TrimSpace(session.Token) == "" || strings.TrimSpace(session.UserID) == "" {
		return errors.New("session token and user id are required")
	}
	expiry := session.ExpiresAt
	rec := sessionRecord{Token: session.Token, UserID: session.UserID, ExpiresAt: &expiry}
	return platformpostgres.Conn(ctx, s.db).Create(&rec).Error
}

// Get ignores sessions whose expiry has passed.
func (s *SessionStore) Get(ctx context.Context, token string) (*domain.Session, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	var rec sessionRecord
	err := platformpostgres.Conn(ctx, s.db).
		Where("token = ? AND expires_at > ?", token, s.now()).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, userports.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	session := &domain.Session{Token: rec.Token, UserID: rec.UserID}
	if rec.ExpiresAt != nil {
		session.ExpiresAt = *rec.ExpiresAt
	}
	return session, nil
}

func (s *SessionStore) Delete(ctx context.Context, token string) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	return platformpostgres.Conn(ctx, s.db).Delete(&sessionRecord{}, "token = ?", token).Error
}

// PurgeExpired removes all expired sessions and reports how many were deleted.
func (s *SessionStore) PurgeExpired(ctx context.Context) (int64, error) {
	if err := s.ensureDB(); err != nil {
		return 0, err
	}
	result := platformpostgres.Conn(ctx, s.db).
		Where("expires_at IS NOT NULL AND expires_at <= ?", s.now()).
		Delete(&sessionRecord{})
	return result.RowsAffected, result.Error
}

func (s *SessionStore) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("postgres session store not configured")
	}
	return nil
}

var _ userports.SessionStore = (*SessionStore)(nil)
