package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Apurer/go-storefront-api/internal/domains/contact/domain"
	"github.com/Apurer/go-storefront-api/internal/domains/contact/ports"
	platformpostgres "github.com/Apurer/go-storefront-api/internal/platform/postgres"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists contact messages in PostgreSQL.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type contactRecord struct {
	ID          string    `gorm:"primaryKey;column:id;type:uuid"`
	Name        string    `gorm:"column:name"`
	Email       string    `gorm:"column:email"`
	Message     string    `gorm:"column:message"`
	OrderNumber *string   `gorm:"column:order_number"`
	Topic       *string   `gorm:"column:topic"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (contactRecord) TableName() string { return "contacts" }

func (r *Repository) Create(ctx context.Context, contact *domain.Contact) (*domain.Contact, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("postgres contact repository not configured")
	}
	if contact == nil {
		return nil, errors.New("contact is nil")
	}
	record := contactRecord{
		ID:          contact.ID,
		Name:        contact.Name,
		Email:       contact.Email,
		Message:     contact.Message,
		OrderNumber: contact.OrderNumber,
		Topic:       contact.Topic,
		CreatedAt:   contact.CreatedAt,
	}
	if err := platformpostgres.Conn(ctx, r.db).Create(&record).Error; err != nil {
		return nil, err
	}
	return &domain.Contact{
		ID:          record.ID,
		Name:        record.Name,
		Email:       record.Email,
		Message:     record.Message,
		OrderNumber: record.OrderNumber,
		Topic:       record.Topic,
		CreatedAt:   record.CreatedAt,
	}, nil
}
