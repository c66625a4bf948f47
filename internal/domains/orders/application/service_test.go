package application

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartmemory "github.com/Apurer/go-storefront-api/internal/domains/cart/adapters/memory"
	cartapp "github.com/Apurer/go-storefront-api/internal/domains/cart/application"
	catalogmemory "github.com/Apurer/go-storefront-api/internal/domains/catalog/adapters/memory"
	catalogdomain "github.com/Apurer/go-storefront-api/internal/domains/catalog/domain"
	ordersmemory "github.com/Apurer/go-storefront-api/internal/domains/orders/adapters/memory"
	"github.com/Apurer/go-storefront-api/internal/domains/orders/domain"
	"github.com/Apurer/go-storefront-api/internal/domains/orders/ports"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.OrderPlaced
	err    error
}

func (p *recordingPublisher) PublishOrderPlaced(_ context.Context, event domain.OrderPlaced) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

type failingClearCart struct {
	ports.Cart
}

func (failingClearCart) Clear(context.Context, string) error {
	return errors.New("connection reset")
}

type failingRepo struct {
	ports.Repository
}

func (failingRepo) Create(context.Context, *domain.Order) (*domain.Order, error) {
	return nil, errors.New("insert failed")
}

type fixture struct {
	svc       *Service
	cart      *cartapp.Service
	catalog   *catalogmemory.Repository
	orders    *ordersmemory.Repository
	publisher *recordingPublisher
	logs      *bytes.Buffer
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	catalog := catalogmemory.NewRepository()
	cart := cartapp.NewService(cartmemory.NewRepository(), catalog)
	orders := ordersmemory.NewRepository()
	publisher := &recordingPublisher{}
	logs := &bytes.Buffer{}
	base := []Option{
		WithTransactor(ordersmemory.NewTransactor()),
		WithPublisher(publisher),
		WithLogger(slog.New(slog.NewTextHandler(logs, nil))),
	}
	f := &fixture{
		svc:       NewService(orders, cart, catalog, append(base, opts...)...),
		cart:      cart,
		catalog:   catalog,
		orders:    orders,
		publisher: publisher,
		logs:      logs,
	}
	f.product(t, "p1", "Cable", "10.00")
	f.product(t, "p2", "Mouse", "5.00")
	return f
}

func (f *fixture) product(t *testing.T, id, name, price string) {
	t.Helper()
	product, err := catalogdomain.NewProduct(id, name, "accessories", decimal.RequireFromString(price), 10)
	require.NoError(t, err)
	_, err = f.catalog.Save(context.Background(), product)
	require.NoError(t, err)
}

func (f *fixture) add(t *testing.T, userID, productID string, quantity int) {
	t.Helper()
	_, err := f.cart.AddItem(context.Background(), userID, productID, quantity)
	require.NoError(t, err)
}

func delivery() domain.DeliveryInfo {
	return domain.DeliveryInfo{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Phone:     "555-123-4567",
		Address:   "1 Analytical Way",
		City:      "London",
		ZipCode:   "12345",
	}
}

func TestPlaceOrderSnapshotsCartAndClearsIt(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.add(t, "u1", "p1", 2)
	f.add(t, "u1", "p2", 1)

	order, err := f.svc.PlaceOrder(ctx, "u1", delivery())
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPending, order.Status)
	assert.Equal(t, "25.00", order.Subtotal.StringFixed(2))
	assert.Equal(t, "2.00", order.Tax.StringFixed(2))
	assert.Equal(t, "27.00", order.Total.StringFixed(2))
	assert.True(t, order.Total.Equal(order.Subtotal.Add(order.Tax)))
	require.Len(t, order.Items, 2)
	names := []string{order.Items[0].Name, order.Items[1].Name}
	assert.ElementsMatch(t, []string{"Cable", "Mouse"}, names)

	lines, err := f.cart.ListLines(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, lines)

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, order.ID, f.publisher.events[0].OrderID)

	stored, err := f.svc.ListOrders(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, order.ID, stored[0].ID)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.PlaceOrder(ctx, "u1", delivery())
	require.ErrorIs(t, err, ErrEmptyCart)

	orders, err := f.svc.ListOrders(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, orders)
	assert.Empty(t, f.publisher.events)
}

func TestPlaceOrderValidatesDeliveryBeforeReadingCart(t *testing.T) {
	f := newFixture(t)
	bad := delivery()
	bad.Phone = "12345"

	_, err := f.svc.PlaceOrder(context.Background(), "u1", bad)
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrInvalidDelivery)

	var fields domain.FieldErrors
	require.True(t, errors.As(err, &fields))
	assert.Contains(t, fields, "phone")
}

func TestPlaceOrderIsUnaffectedByLaterPriceChanges(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.add(t, "u1", "p1", 1)

	order, err := f.svc.PlaceOrder(ctx, "u1", delivery())
	require.NoError(t, err)

	f.product(t, "p1", "Cable v2", "99.00")

	stored, err := f.svc.GetOrder(ctx, "u1", order.ID)
	require.NoError(t, err)
	assert.Equal(t, "10.00", stored.Items[0].Price.StringFixed(2))
	assert.Equal(t, "Cable", stored.Items[0].Name)
	assert.Equal(t, order.Total.StringFixed(2), stored.Total.StringFixed(2))
}

func TestPlaceOrderUsesPriceAtCheckoutTime(t *testing.T) {
	f := newFixture(t)
	f.add(t, "u1", "p1", 1)
	f.product(t, "p1", "Cable", "12.00")

	order, err := f.svc.PlaceOrder(context.Background(), "u1", delivery())
	require.NoError(t, err)
	assert.Equal(t, "12.00", order.Subtotal.StringFixed(2))
}

func TestPlaceOrderDropsLinesForDeletedProducts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.add(t, "u1", "p1", 1)
	f.add(t, "u1", "p2", 3)
	require.NoError(t, f.catalog.Delete(ctx, "p2"))

	order, err := f.svc.PlaceOrder(ctx, "u1", delivery())
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "p1", order.Items[0].ProductID)
	assert.Contains(t, f.logs.String(), "dropping cart line for missing product")
}

func TestPlaceOrderAllProductsDeletedIsEmptyCart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.add(t, "u1", "p1", 1)
	require.NoError(t, f.catalog.Delete(ctx, "p1"))

	_, err := f.svc.PlaceOrder(ctx, "u1", delivery())
	require.ErrorIs(t, err, ErrEmptyCart)
}

func TestPlaceOrderKeepsOrderWhenClearFails(t *testing.T) {
	catalog := catalogmemory.NewRepository()
	cart := cartapp.NewService(cartmemory.NewRepository(), catalog)
	product, err := catalogdomain.NewProduct("p1", "Cable", "accessories", decimal.NewFromInt(10), 1)
	require.NoError(t, err)
	_, err = catalog.Save(context.Background(), product)
	require.NoError(t, err)
	_, err = cart.AddItem(context.Background(), "u1", "p1", 1)
	require.NoError(t, err)

	orders := ordersmemory.NewRepository()
	svc := NewService(orders, failingClearCart{Cart: cart}, catalog)

	order, err := svc.PlaceOrder(context.Background(), "u1", delivery())
	require.NoError(t, err)

	stored, err := orders.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, stored.ID)
}

func TestCompleteCheckoutReportsEveryFailure(t *testing.T) {
	f := newFixture(t)
	f.publisher.err = errors.New("broker down")
	f.add(t, "u1", "p1", 1)

	order, err := f.svc.CommitOrder(context.Background(), "", "u1", delivery())
	require.NoError(t, err)

	err = f.svc.CompleteCheckout(context.Background(), order)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")

	lines, listErr := f.cart.ListLines(context.Background(), "u1")
	require.NoError(t, listErr)
	assert.Empty(t, lines)
}

func TestCommitOrderFailureLeavesCartIntact(t *testing.T) {
	catalog := catalogmemory.NewRepository()
	cart := cartapp.NewService(cartmemory.NewRepository(), catalog)
	product, err := catalogdomain.NewProduct("p1", "Cable", "accessories", decimal.NewFromInt(10), 1)
	require.NoError(t, err)
	_, err = catalog.Save(context.Background(), product)
	require.NoError(t, err)
	_, err = cart.AddItem(context.Background(), "u1", "p1", 1)
	require.NoError(t, err)

	svc := NewService(failingRepo{Repository: ordersmemory.NewRepository()}, cart, catalog)

	_, err = svc.PlaceOrder(context.Background(), "u1", delivery())
	require.Error(t, err)

	lines, err := cart.ListLines(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, lines, 1)
}

func TestGetOrderHidesOtherUsersOrders(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.add(t, "u1", "p1", 1)

	order, err := f.svc.PlaceOrder(ctx, "u1", delivery())
	require.NoError(t, err)

	_, err = f.svc.GetOrder(ctx, "u2", order.ID)
	require.ErrorIs(t, err, ports.ErrNotFound)

	_, err = f.svc.GetOrder(ctx, "u1", "missing")
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestListOrdersNewestFirst(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	f := newFixture(t, WithClock(func() time.Time {
		now = now.Add(time.Minute)
		return now
	}))
	ctx := context.Background()

	f.add(t, "u1", "p1", 1)
	first, err := f.svc.PlaceOrder(ctx, "u1", delivery())
	require.NoError(t, err)
	f.add(t, "u1", "p2", 1)
	second, err := f.svc.PlaceOrder(ctx, "u1", delivery())
	require.NoError(t, err)

	orders, err := f.svc.ListOrders(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Equal(t, first.ID, orders[1].ID)
}

func TestConcurrentCheckoutsForDifferentUsers(t *testing.T) {
	f := newFixture(t)
	users := []string{"u1", "u2", "u3", "u4"}
	for _, u := range users {
		f.add(t, u, "p1", 1)
	}

	var wg sync.WaitGroup
	errs := make([]error, len(users))
	for i, u := range users {
		wg.Add(1)
		go func(i int, u string) {
			defer wg.Done()
			_, errs[i] = f.svc.PlaceOrder(context.Background(), u, delivery())
		}(i, u)
	}
	wg.Wait()

	for i, u := range users {
		require.NoError(t, errs[i])
		orders, err := f.svc.ListOrders(context.Background(), u)
		require.NoError(t, err)
		assert.Len(t, orders, 1)
	}
}

func TestCommitOrderWithSameIDCommitsOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.add(t, "u1", "p1", 1)
	orderID := uuid.NewString()

	first, err := f.svc.CommitOrder(ctx, orderID, "u1", delivery())
	require.NoError(t, err)
	assert.Equal(t, orderID, first.ID)

	f.add(t, "u1", "p2", 3)
	retried, err := f.svc.CommitOrder(ctx, orderID, "u1", delivery())
	require.NoError(t, err)
	assert.Equal(t, first.ID, retried.ID)
	assert.Equal(t, first.Total.String(), retried.Total.String())
	require.Len(t, retried.Items, 1)

	orders, err := f.orders.ListByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestCommitOrderRejectsForeignOrMalformedID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.add(t, "u1", "p1", 1)
	f.add(t, "u2", "p1", 1)
	orderID := uuid.NewString()
	_, err := f.svc.CommitOrder(ctx, orderID, "u1", delivery())
	require.NoError(t, err)

	_, err = f.svc.CommitOrder(ctx, orderID, "u2", delivery())
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.CommitOrder(ctx, "order-1", "u2", delivery())
	assert.ErrorIs(t, err, ErrInvalidInput)

	orders, err := f.orders.ListByUser(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, orders)
}
