//go:build integration

package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	cartpostgres "github.com/Apurer/go-storefront-api/internal/domains/cart/adapters/persistence/postgres"
	cartapp "github.com/Apurer/go-storefront-api/internal/domains/cart/application"
	catalogpostgres "github.com/Apurer/go-storefront-api/internal/domains/catalog/adapters/persistence/postgres"
	catalogdomain "github.com/Apurer/go-storefront-api/internal/domains/catalog/domain"
	ordersapp "github.com/Apurer/go-storefront-api/internal/domains/orders/application"
	"github.com/Apurer/go-storefront-api/internal/domains/orders/domain"
	"github.com/Apurer/go-storefront-api/internal/domains/orders/ports"
	platformpostgres "github.com/Apurer/go-storefront-api/internal/platform/postgres"
	"github.com/Apurer/go-storefront-api/internal/platform/postgres/pgtest"
)

func seedUser(t *testing.T, db *gorm.DB) string {
	t.Helper()
	id := uuid.NewString()
	require.NoError(t, db.Exec(
		"INSERT INTO users (id, username, email, password_hash, first_name, last_name, created_at, updated_at) VALUES (?, ?, ?, 'x', 'Ada', 'Lovelace', NOW(), NOW())",
		id, "user-"+id[:8], id[:8]+"@example.com",
	).Error)
	return id
}

func seedProduct(t *testing.T, db *gorm.DB, price string) *catalogdomain.Product {
	t.Helper()
	product, err := catalogdomain.NewProduct(uuid.NewString(), "Keyboard", "keyboards", decimal.RequireFromString(price), 10)
	require.NoError(t, err)
	saved, err := catalogpostgres.NewRepository(db).Save(context.Background(), product)
	require.NoError(t, err)
	return saved
}

func delivery() domain.DeliveryInfo {
	return domain.DeliveryInfo{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Phone:     "5551234567",
		Address:   "1 Analytical Way",
		City:      "London",
		ZipCode:   "12345",
		Notes:     "leave at door",
	}
}

func newOrder(t *testing.T, userID string, product *catalogdomain.Product, quantity int, at time.Time) *domain.Order {
	t.Helper()
	order, err := domain.NewOrder(uuid.NewString(), userID, []domain.LineItem{{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Quantity:  quantity,
	}}, delivery(), decimal.RequireFromString("0.08"), at)
	require.NoError(t, err)
	return order
}

func TestRepository_CreateAndRead(t *testing.T) {
	db := pgtest.Start(t)
	repo := NewRepository(db)
	ctx := context.Background()
	userID := seedUser(t, db)
	product := seedProduct(t, db, "129.99")

	created, err := repo.Create(ctx, newOrder(t, userID, product, 2, time.Now().UTC()))
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, userID, got.UserID)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Keyboard", got.Items[0].Name)
	assert.Equal(t, "129.99", got.Items[0].Price.StringFixed(2))
	assert.Equal(t, "259.98", got.Subtotal.StringFixed(2))
	assert.Equal(t, "20.80", got.Tax.StringFixed(2))
	assert.Equal(t, "280.78", got.Total.StringFixed(2))
	assert.Equal(t, "leave at door", got.Delivery.Notes)
	assert.Equal(t, domain.StatusPending, got.Status)

	_, err = repo.GetByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_ListByUserNewestFirst(t *testing.T) {
	db := pgtest.Start(t)
	repo := NewRepository(db)
	ctx := context.Background()
	userID, otherID := seedUser(t, db), seedUser(t, db)
	product := seedProduct(t, db, "10.00")
	base := time.Now().UTC().Truncate(time.Second)

	older, err := repo.Create(ctx, newOrder(t, userID, product, 1, base))
	require.NoError(t, err)
	newer, err := repo.Create(ctx, newOrder(t, userID, product, 1, base.Add(time.Minute)))
	require.NoError(t, err)
	_, err = repo.Create(ctx, newOrder(t, otherID, product, 1, base))
	require.NoError(t, err)

	orders, err := repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, newer.ID, orders[0].ID)
	assert.Equal(t, older.ID, orders[1].ID)
}

func TestRepository_CreateSameIDReturnsStoredOrder(t *testing.T) {
	db := pgtest.Start(t)
	repo := NewRepository(db)
	ctx := context.Background()
	userID, otherID := seedUser(t, db), seedUser(t, db)
	product := seedProduct(t, db, "10.00")
	order := newOrder(t, userID, product, 1, time.Now().UTC())

	first, err := repo.Create(ctx, order)
	require.NoError(t, err)
	again := order.Clone()
	again.Items[0].Quantity = 5
	second, err := repo.Create(ctx, again)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, second.Items[0].Quantity)

	stolen := order.Clone()
	stolen.UserID = otherID
	_, err = repo.Create(ctx, stolen)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	orders, err := repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestRepository_CreateRollsBackWithTransaction(t *testing.T) {
	db := pgtest.Start(t)
	repo := NewRepository(db)
	tx, err := platformpostgres.NewTransactor(db)
	require.NoError(t, err)
	ctx := context.Background()
	userID := seedUser(t, db)
	product := seedProduct(t, db, "10.00")
	order := newOrder(t, userID, product, 1, time.Now().UTC())

	boom := errors.New("boom")
	err = tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := repo.Create(ctx, order); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = repo.GetByID(ctx, order.ID)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestCheckoutAgainstPostgres(t *testing.T) {
	db := pgtest.Start(t)
	ctx := context.Background()
	tx, err := platformpostgres.NewTransactor(db)
	require.NoError(t, err)
	catalog := catalogpostgres.NewRepository(db)
	cart := cartapp.NewService(cartpostgres.NewRepository(db), catalog)
	service := ordersapp.NewService(NewRepository(db), cart, catalog, ordersapp.WithTransactor(tx))

	userID := seedUser(t, db)
	kept := seedProduct(t, db, "50.00")
	removed := seedProduct(t, db, "5.00")
	_, err = cart.AddItem(ctx, userID, kept.ID, 2)
	require.NoError(t, err)
	_, err = cart.AddItem(ctx, userID, removed.ID, 1)
	require.NoError(t, err)
	require.NoError(t, catalog.Delete(ctx, removed.ID))

	order, err := service.PlaceOrder(ctx, userID, delivery())
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "108.00", order.Total.StringFixed(2))

	lines, err := cart.ListLines(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, lines)

	_, err = service.PlaceOrder(ctx, userID, delivery())
	assert.ErrorIs(t, err, ordersapp.ErrEmptyCart)
}
