package orders

import (
	"github.com/google/uuid"
	"go.temporal.io/sdk/workflow"

	orderactivities "github.com/Apurer/go-storefront-api/internal/durable/temporal/activities/orders"
	"github.com/Apurer/go-storefront-api/internal/durable/temporal/sequences"
	ordersdomain "github.com/Apurer/go-storefront-api/internal/domains/orders/domain"
)

const (
	// CheckoutWorkflowName is the public identifier for registering the workflow.
	CheckoutWorkflowName = "orders.workflows.Checkout"
	// CheckoutTaskQueue is the queue consumed by the worker processing checkouts.
	CheckoutTaskQueue = "ORDER_CHECKOUT"
)

// CheckoutWorkflowInput captures one checkout request.
type CheckoutWorkflowInput struct {
	UserID   string
	Delivery ordersdomain.DeliveryInfo
	TraceID  string
}

// CheckoutWorkflow turns a cart into an order.
func CheckoutWorkflow(ctx workflow.Context, input CheckoutWorkflowInput) (*ordersdomain.Order, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("CheckoutWorkflow started", withTraceID(input.TraceID, "userId", input.UserID)...)
	var orderID string
	if err := workflow.SideEffect(ctx, func(workflow.Context) interface{} {
		return uuid.NewString()
	}).Get(&orderID); err != nil {
		return nil, err
	}
	order, err := sequences.RunCheckoutSequence(ctx, orderactivities.CommitOrderInput{
		OrderID:  orderID,
		UserID:   input.UserID,
		Delivery: input.Delivery,
	})
	if err != nil {
		logger.Error("CheckoutWorkflow failed", withTraceID(input.TraceID, "userId", input.UserID, "error", err)...)
		return nil, err
	}
	logger.Info("CheckoutWorkflow completed", withTraceID(input.TraceID, "orderId", order.ID)...)
	return order, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
