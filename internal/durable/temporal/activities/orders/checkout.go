package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	ordersapp "github.com/Apurer/go-storefront-api/internal/domains/orders/application"
	ordersdomain "github.com/Apurer/go-storefront-api/internal/domains/orders/domain"
	ordersports "github.com/Apurer/go-storefront-api/internal/domains/orders/ports"
)

const (
	// CommitOrderActivityName snapshots the cart and inserts the order.
	CommitOrderActivityName = "orders.activities.CommitOrder"
	// CompleteCheckoutActivityName clears the cart and publishes OrderPlaced.
	CompleteCheckoutActivityName = "orders.activities.CompleteCheckout"

	// ValidationErrorType marks rejected delivery details or user ids.
	ValidationErrorType = "ValidationError"
	// EmptyCartErrorType marks a checkout with nothing purchasable.
	EmptyCartErrorType = "EmptyCartError"
)

// CommitOrderInput is the payload of the commit activity. OrderID is fixed by the workflow
// so every attempt of the activity commits the same order.
type CommitOrderInput struct {
	OrderID  string
	UserID   string
	Delivery ordersdomain.DeliveryInfo
}

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	service ordersports.Service
}

func NewActivities(service ordersports.Service) *Activities {
	return &Activities{service: service}
}

// CommitOrder runs the transactional half of checkout. Business rejections are not retried.
func (a *Activities) CommitOrder(ctx context.Context, input CommitOrderInput) (*ordersdomain.Order, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("commit order activity not initialized", "userId", input.UserID)
		return nil, errors.New("commit order activity not initialized")
	}
	logger.Info("CommitOrder activity started", "userId", input.UserID, "orderId", input.OrderID,
		"attempt", activity.GetInfo(ctx).Attempt)
	order, err := a.service.CommitOrder(ctx, input.OrderID, input.UserID, input.Delivery)
	if err != nil {
		logger.Error("CommitOrder activity failed", "userId", input.UserID, "error", err)
		return nil, toApplicationError(err)
	}
	logger.Info("CommitOrder activity completed", "orderId", order.ID)
	return order, nil
}

// CompleteCheckout runs the post-commit steps for an order.
func (a *Activities) CompleteCheckout(ctx context.Context, order *ordersdomain.Order) error {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		return errors.New("complete checkout activity not initialized")
	}
	if order == nil {
		return temporal.NewNonRetryableApplicationError("order is nil", ValidationErrorType, nil)
	}
	logger.Info("CompleteCheckout activity started", "orderId", order.ID)
	if err := a.service.CompleteCheckout(ctx, order); err != nil {
		logger.Warn("CompleteCheckout activity failed", "orderId", order.ID, "error", err)
		return err
	}
	logger.Info("CompleteCheckout activity completed", "orderId", order.ID)
	return nil
}

func toApplicationError(err error) error {
	var fields ordersdomain.FieldErrors
	switch {
	case errors.Is(err, ordersapp.ErrEmptyCart):
		return temporal.NewNonRetryableApplicationError(err.Error(), EmptyCartErrorType, err)
	case errors.As(err, &fields):
		return temporal.NewNonRetryableApplicationError(err.Error(), ValidationErrorType, err, fields)
	case errors.Is(err, ordersapp.ErrInvalidInput):
		return temporal.NewNonRetryableApplicationError(err.Error(), ValidationErrorType, err)
	default:
		return err
	}
}
