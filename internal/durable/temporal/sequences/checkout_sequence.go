package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	orderactivities "github.com/Apurer/go-storefront-api/internal/durable/temporal/activities/orders"
	ordersdomain "github.com/Apurer/go-storefront-api/internal/domains/orders/domain"
)

// RunCheckoutSequence commits the order, then retries the post-commit steps.
// Commit retries reuse input.OrderID, so a lost acknowledgement replays the stored order.
// A post-commit failure is logged and the committed order is still returned.
func RunCheckoutSequence(ctx workflow.Context, input orderactivities.CommitOrderInput) (*ordersdomain.Order, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("checkout sequence started", "userId", input.UserID, "orderId", input.OrderID)
	commitOptions := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:        time.Second,
			BackoffCoefficient:     2.0,
			MaximumInterval:        5 * time.Second,
			MaximumAttempts:        3,
			NonRetryableErrorTypes: []string{orderactivities.ValidationErrorType, orderactivities.EmptyCartErrorType},
		},
	}
	completeOptions := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
		},
	}

	var order ordersdomain.Order
	commitCtx := workflow.WithActivityOptions(ctx, commitOptions)
	if err := workflow.ExecuteActivity(commitCtx, orderactivities.CommitOrderActivityName, input).Get(commitCtx, &order); err != nil {
		logger.Error("checkout sequence failed to commit", "userId", input.UserID, "error", err)
		return nil, err
	}

	completeCtx := workflow.WithActivityOptions(ctx, completeOptions)
	if err := workflow.ExecuteActivity(completeCtx, orderactivities.CompleteCheckoutActivityName, &order).Get(completeCtx, nil); err != nil {
		logger.Warn("checkout post-commit steps failed", "orderId", order.ID, "error", err)
	}
	logger.Info("checkout sequence completed", "orderId", order.ID)
	return &order, nil
}
