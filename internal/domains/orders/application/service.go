package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	catalogports "github.com/Apurer/go-storefront-api/internal/domains/catalog/ports"
	"github.com/Apurer/go-storefront-api/internal/domains/orders/domain"
	"github.com/Apurer/go-storefront-api/internal/domains/orders/ports"
	"github.com/Apurer/go-storefront-api/internal/shared/pricing"
)

// Service is the order commit engine.
type Service struct {
	repo      ports.Repository
	cart      ports.Cart
	catalog   ports.Catalog
	tx        ports.Transactor
	publisher ports.EventPublisher
	logger    *slog.Logger
	taxRate   decimal.Decimal
	now       func() time.Time
	newID     func() string
}

type Option func(*Service)

// WithTransactor sets the unit of work used by CommitOrder.
func WithTransactor(tx ports.Transactor) Option {
	return func(s *Service) { s.tx = tx }
}

// WithPublisher sets where OrderPlaced events go.
func WithPublisher(p ports.EventPublisher) Option {
	return func(s *Service) { s.publisher = p }
}

// WithLogger receives warnings about dropped lines and failed post-commit steps.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithTaxRate(rate decimal.Decimal) Option {
	return func(s *Service) { s.taxRate = rate }
}

// WithClock overrides the time source for deterministic testing.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(repo ports.Repository, cart ports.Cart, catalog ports.Catalog, opts ...Option) *Service {
	s := &Service{
		repo:      repo,
		cart:      cart,
		catalog:   catalog,
		tx:        ports.DirectTransactor,
		publisher: ports.NoopEventPublisher,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		taxRate:   pricing.DefaultTaxRate,
		now:       func() time.Time { return time.Now().UTC() },
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// PlaceOrder commits the cart as an order, then clears the cart and publishes OrderPlaced.
// Post-commit failures are logged and never undo the order.
func (s *Service) PlaceOrder(ctx context.Context, userID string, delivery domain.DeliveryInfo) (*domain.Order, error) {
	order, err := s.CommitOrder(ctx, "", userID, delivery)
	if err != nil {
		return nil, err
	}
	if err := s.CompleteCheckout(ctx, order); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "checkout completed with errors",
			slog.String("order_id", order.ID), slog.String("error", err.Error()))
	}
	return order, nil
}

// CommitOrder validates delivery, snapshots the cart at current prices and inserts the order in one transaction.
// An empty orderID mints a fresh one. A supplied orderID that is already stored for the same user
// returns the stored order, so a retried commit never inserts twice.
func (s *Service) CommitOrder(ctx context.Context, orderID, userID string, delivery domain.DeliveryInfo) (*domain.Order, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, mapError(domain.ErrEmptyUserID)
	}
	if orderID != "" {
		if _, err := uuid.Parse(orderID); err != nil {
			return nil, fmt.Errorf("%w: order id %q is not a uuid", ErrInvalidInput, orderID)
		}
	}
	delivery = delivery.Normalize()
	if err := delivery.Validate(); err != nil {
		return nil, mapError(err)
	}
	var created *domain.Order
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if orderID != "" {
			existing, err := s.repo.GetByID(ctx, orderID)
			switch {
			case err == nil && existing.UserID != userID:
				return fmt.Errorf("%w: order id %s is already taken", ErrInvalidInput, orderID)
			case err == nil:
				s.logger.LogAttrs(ctx, slog.LevelInfo, "order already committed",
					slog.String("order_id", orderID), slog.String("user_id", userID))
				created = existing
				return nil
			case !errors.Is(err, ports.ErrNotFound):
				return err
			}
		} else {
			orderID = s.newID()
		}
		lines, err := s.cart.ListLines(ctx, userID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return ErrEmptyCart
		}
		items := make([]domain.LineItem, 0, len(lines))
		for _, line := range lines {
			product, err := s.catalog.GetByID(ctx, line.ProductID)
			if errors.Is(err, catalogports.ErrNotFound) {
				s.logger.LogAttrs(ctx, slog.LevelWarn, "dropping cart line for missing product",
					slog.String("user_id", userID), slog.String("product_id", line.ProductID), slog.Int("quantity", line.Quantity))
				continue
			}
			if err != nil {
				return err
			}
			items = append(items, domain.LineItem{
				ProductID: product.ID,
				Name:      product.Name,
				Price:     product.Price,
				Quantity:  line.Quantity,
			})
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}
		order, err := domain.NewOrder(orderID, userID, items, delivery, s.taxRate, s.now())
		if err != nil {
			return err
		}
		created, err = s.repo.Create(ctx, order)
		return err
	})
	if err != nil {
		return nil, mapError(err)
	}
	return created, nil
}

// CompleteCheckout clears the purchaser's cart and publishes OrderPlaced. Both steps are attempted.
func (s *Service) CompleteCheckout(ctx context.Context, order *domain.Order) error {
	if order == nil {
		return errors.New("order is nil")
	}
	ctx = context.WithoutCancel(ctx)
	var errs []error
	if err := s.cart.Clear(ctx, order.UserID); err != nil {
		errs = append(errs, fmt.Errorf("clear cart: %w", err))
	}
	if err := s.publisher.PublishOrderPlaced(ctx, domain.NewOrderPlaced(order, s.now())); err != nil {
		errs = append(errs, fmt.Errorf("publish order placed: %w", err))
	}
	return errors.Join(errs...)
}

func (s *Service) ListOrders(ctx context.Context, userID string) ([]*domain.Order, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, mapError(domain.ErrEmptyUserID)
	}
	return s.repo.ListByUser(ctx, userID)
}

// GetOrder returns ErrNotFound for orders owned by someone else.
func (s *Service) GetOrder(ctx context.Context, userID, orderID string) (*domain.Order, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, mapError(domain.ErrEmptyUserID)
	}
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, ports.ErrNotFound
	}
	return order, nil
}

var _ ports.Service = (*Service)(nil)
