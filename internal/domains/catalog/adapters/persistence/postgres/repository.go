package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-storefront-api/internal/domains/catalog/domain"
	"github.com/Apurer/go-storefront-api/internal/domains/catalog/ports"
	platformpostgres "github.com/Apurer/go-storefront-api/internal/platform/postgres"
	"github.com/Apurer/go-storefront-api/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists products in PostgreSQL using GORM. Caller manages DB lifecycle.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// productRecord maps the product aggregate to the products table.
type productRecord struct {
	ID            string           `gorm:"primaryKey;column:id;type:uuid"`
	Name          string           `gorm:"column:name"`
	Category      string           `gorm:"column:category"`
	Price         decimal.Decimal  `gorm:"column:price;type:numeric(10,2)"`
	OriginalPrice *decimal.Decimal `gorm:"column:original_price;type:numeric(10,2)"`
	Rating        *decimal.Decimal `gorm:"column:rating;type:numeric(2,1)"`
	Image         string           `gorm:"column:image"`
	Description   string           `gorm:"column:description"`
	InStock       int              `gorm:"column:in_stock"`
	CreatedAt     time.Time        `gorm:"column:created_at"`
	UpdatedAt     time.Time        `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

// Save inserts or updates a product.
func (r *Repository) Save(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.New("product is nil")
	}
	record := toRecord(product)
	if err := platformpostgres.Conn(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"name":           record.Name,
				"category":       record.Category,
				"price":          record.Price,
				"original_price": record.OriginalPrice,
				"rating":         record.Rating,
				"image":          record.Image,
				"description":    record.Description,
				"in_stock":       record.InStock,
				"updated_at":     gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches a product by identifier.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record productRecord
	if err := platformpostgres.Conn(ctx, r.db).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// List returns products newest first, optionally filtered by category.
func (r *Repository) List(ctx context.Context, category string) ([]*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := platformpostgres.Conn(ctx, r.db).Order("created_at DESC").Order("id")
	if category != "" {
		query = query.Where("category = ?", category)
	}
	var records []productRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	products := make([]*domain.Product, 0, len(records))
	for i := range records {
		products = append(products, records[i].toDomain())
	}
	return products, nil
}

// Delete removes a product. Cart lines referencing it cascade.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := platformpostgres.Conn(ctx, r.db).Delete(&productRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// seedLockKey is the transaction-scoped advisory lock held while seeding.
const seedLockKey = 4_210_771

// InsertIfEmpty counts and inserts under one advisory lock, so concurrent seeders serialize.
func (r *Repository) InsertIfEmpty(ctx context.Context, products []*domain.Product) (int, error) {
	if err := r.ensureDB(); err != nil {
		return 0, err
	}
	inserted := 0
	err := platformpostgres.Conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", seedLockKey).Error; err != nil {
			return err
		}
		var count int64
		if err := tx.Model(&productRecord{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 || len(products) == 0 {
			return nil
		}
		records := make([]productRecord, 0, len(products))
		for _, product := range products {
			records = append(records, toRecord(product))
		}
		if err := tx.Create(&records).Error; err != nil {
			return err
		}
		inserted = len(records)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres product repository not configured")
	}
	return nil
}

func toRecord(product *domain.Product) productRecord {
	return productRecord{
		ID:            product.ID,
		Name:          product.Name,
		Category:      product.Category,
		Price:         product.Price,
		OriginalPrice: product.OriginalPrice,
		Rating:        product.Rating,
		Image:         product.Image,
		Description:   product.Description,
		InStock:       product.InStock,
	}
}

func (r productRecord) toDomain() *domain.Product {
	return &domain.Product{
		ID:            r.ID,
		Name:          r.Name,
		Category:      r.Category,
		Price:         r.Price,
		OriginalPrice: r.OriginalPrice,
		Rating:        r.Rating,
		Image:         r.Image,
		Description:   r.Description,
		InStock:       r.InStock,
		Metadata: projection.Metadata{
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
		},
	}
}
