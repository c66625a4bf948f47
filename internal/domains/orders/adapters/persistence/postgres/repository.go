package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-storefront-api/internal/domains/orders/domain"
	"github.com/Apurer/go-storefront-api/internal/domains/orders/ports"
	platformpostgres "github.com/Apurer/go-storefront-api/internal/platform/postgres"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders in PostgreSQL using GORM. Caller manages DB lifecycle.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// orderRecord maps an order to the orders table. Line items live in a JSON text column.
type orderRecord struct {
	ID              string          `gorm:"primaryKey;column:id;type:uuid"`
	UserID          string          `gorm:"column:user_id;type:uuid"`
	Items           []lineItemJSON  `gorm:"column:items;type:text;serializer:json"`
	Subtotal        decimal.Decimal `gorm:"column:subtotal;type:numeric(10,2)"`
	Tax             decimal.Decimal `gorm:"column:tax;type:numeric(10,2)"`
	Total           decimal.Decimal `gorm:"column:total;type:numeric(10,2)"`
	Status          string          `gorm:"column:status;type:varchar(32)"`
	FirstName       string          `gorm:"column:first_name"`
	LastName        string          `gorm:"column:last_name"`
	Email           string          `gorm:"column:email"`
	Phone           string          `gorm:"column:phone"`
	ShippingAddress string          `gorm:"column:shipping_address"`
	City            string          `gorm:"column:city"`
	ZipCode         string          `gorm:"column:zip_code"`
	Notes           string          `gorm:"column:notes"`
	CreatedAt       time.Time       `gorm:"column:created_at"`
	UpdatedAt       time.Time       `gorm:"column:updated_at"`
}

// lineItemJSON is the stored shape of one line: {productId, quantity, price, name}.
type lineItemJSON struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Name      string          `json:"name"`
}

func (orderRecord) TableName() string { return "orders" }

// Create inserts a new order. An id that is already stored for the same user is not
// overwritten; the stored row is read back instead.
func (r *Repository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	record := toRecord(order)
	res := platformpostgres.Conn(ctx, r.db).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(&record)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		stored, err := r.GetByID(ctx, order.ID)
		if err != nil {
			return nil, err
		}
		if stored.UserID != order.UserID {
			return nil, fmt.Errorf("order %s already exists: %w", order.ID, gorm.ErrDuplicatedKey)
		}
		return stored, nil
	}
	return record.toDomain(), nil
}

// GetByID fetches an order by identifier.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := platformpostgres.Conn(ctx, r.db).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// ListByUser returns the user's orders newest first.
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	if err := platformpostgres.Conn(ctx, r.db).
		Where("user_id = ?", userID).
		Order("created_at DESC").Order("id").
		Find(&records).Error; err != nil {
		return nil, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain())
	}
	return orders, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func toRecord(order *domain.Order) orderRecord {
	items := make([]lineItemJSON, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, lineItemJSON{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Name:      item.Name,
		})
	}
	return orderRecord{
		ID:              order.ID,
		UserID:          order.UserID,
		Items:           items,
		Subtotal:        order.Subtotal,
		Tax:             order.Tax,
		Total:           order.Total,
		Status:          string(order.Status),
		FirstName:       order.Delivery.FirstName,
		LastName:        order.Delivery.LastName,
		Email:           order.Delivery.Email,
		Phone:           order.Delivery.Phone,
		ShippingAddress: order.Delivery.Address,
		City:            order.Delivery.City,
		ZipCode:         order.Delivery.ZipCode,
		Notes:           order.Delivery.Notes,
		CreatedAt:       order.CreatedAt,
	}
}

func (r orderRecord) toDomain() *domain.Order {
	items := make([]domain.LineItem, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, domain.LineItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}
	return &domain.Order{
		ID:       r.ID,
		UserID:   r.UserID,
		Items:    items,
		Subtotal: r.Subtotal,
		Tax:      r.Tax,
		Total:    r.Total,
		Delivery: domain.DeliveryInfo{
			FirstName: r.FirstName,
			LastName:  r.LastName,
			Email:     r.Email,
			Phone:     r.Phone,
			Address:   r.ShippingAddress,
			City:      r.City,
			ZipCode:   r.ZipCode,
			Notes:     r.Notes,
		},
		Status:    domain.Status(r.Status),
		CreatedAt: r.CreatedAt,
	}
}
