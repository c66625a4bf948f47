package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-storefront-api/internal/domains/cart/domain"
	"github.com/Apurer/go-storefront-api/internal/domains/cart/ports"
	platformpostgres "github.com/Apurer/go-storefront-api/internal/platform/postgres"
	"github.com/Apurer/go-storefront-api/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists cart lines in PostgreSQL using GORM. Caller manages DB lifecycle.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// cartRecord maps a cart line to the cart table. (user_id, product_id) is unique.
type cartRecord struct {
	ID        string    `gorm:"primaryKey;column:id;type:uuid"`
	UserID    string    `gorm:"column:user_id;type:uuid"`
	ProductID string    `gorm:"column:product_id;type:uuid"`
	Quantity  int       `gorm:"column:quantity"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (cartRecord) TableName() string { return "cart" }

// Add performs merge-on-add as a single upsert so concurrent adds accumulate.
func (r *Repository) Add(ctx context.Context, line *domain.Line) (*domain.Line, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if line == nil {
		return nil, errors.New("cart line is nil")
	}
	if err := domain.ValidateQuantity(line.Quantity); err != nil {
		return nil, err
	}
	record := toRecord(line)
	// The conditional DO UPDATE skips merges that would pass MaxQuantity.
	result := platformpostgres.Conn(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"quantity":   gorm.Expr("cart.quantity + EXCLUDED.quantity"),
				"updated_at": gorm.Expr("NOW()"),
			}),
			Where: clause.Where{Exprs: []clause.Expression{
				gorm.Expr("cart.quantity + EXCLUDED.quantity <= ?", domain.MaxQuantity),
			}},
		}).Create(&record)
	if err := result.Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, ports.ErrProductMissing
		}
		return nil, err
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrQuantityTooLarge
	}
	return r.get(ctx, line.UserID, line.ProductID)
}

// SetQuantity overwrites the quantity of an existing line.
func (r *Repository) SetQuantity(ctx context.Context, userID, productID string, quantity int) (*domain.Line, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if err := domain.ValidateQuantity(quantity); err != nil {
		return nil, err
	}
	result := platformpostgres.Conn(ctx, r.db).
		Model(&cartRecord{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Updates(map[string]any{"quantity": quantity, "updated_at": gorm.Expr("NOW()")})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.get(ctx, userID, productID)
}

// Remove deletes the (user, product) line. Missing lines are not an error.
func (r *Repository) Remove(ctx context.Context, userID, productID string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	return platformpostgres.Conn(ctx, r.db).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&cartRecord{}).Error
}

// Clear deletes every line of the user.
func (r *Repository) Clear(ctx context.Context, userID string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	return platformpostgres.Conn(ctx, r.db).
		Where("user_id = ?", userID).
		Delete(&cartRecord{}).Error
}

// List returns the user's lines oldest first. Rows are locked FOR UPDATE inside a transaction.
func (r *Repository) List(ctx context.Context, userID string) ([]*domain.Line, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := platformpostgres.Conn(ctx, r.db).
		Where("user_id = ?", userID).
		Order("created_at").Order("id")
	if platformpostgres.InTx(ctx) {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var records []cartRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	lines := make([]*domain.Line, 0, len(records))
	for i := range records {
		lines = append(lines, records[i].toDomain())
	}
	return lines, nil
}

func (r *Repository) get(ctx context.Context, userID, productID string) (*domain.Line, error) {
	var record cartRecord
	err := platformpostgres.Conn(ctx, r.db).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres cart repository not configured")
	}
	return nil
}

func toRecord(line *domain.Line) cartRecord {
	return cartRecord{
		ID:        line.ID,
		UserID:    line.UserID,
		ProductID: line.ProductID,
		Quantity:  line.Quantity,
	}
}

func (r cartRecord) toDomain() *domain.Line {
	return &domain.Line{
		ID:        r.ID,
		UserID:    r.UserID,
		ProductID: r.ProductID,
		Quantity:  r.Quantity,
		Metadata: projection.Metadata{
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
		},
	}
}
