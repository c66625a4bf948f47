package workflows

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	ordersapp "github.com/Apurer/go-storefront-api/internal/domains/orders/application"
	"github.com/Apurer/go-storefront-api/internal/domains/orders/domain"
	"github.com/Apurer/go-storefront-api/internal/domains/orders/ports"
	orderactivities "github.com/Apurer/go-storefront-api/internal/durable/temporal/activities/orders"
	orderworkflows "github.com/Apurer/go-storefront-api/internal/durable/temporal/workflows/orders"
)

var (
	_ ports.CheckoutOrchestrator = (*TemporalCheckout)(nil)
	_ ports.CheckoutOrchestrator = (*InlineCheckout)(nil)
)

// TemporalCheckout runs checkout as a Temporal workflow and waits for its result.
type TemporalCheckout struct {
	client    client.Client
	taskQueue string
}

func NewTemporalCheckout(c client.Client) *TemporalCheckout {
	return &TemporalCheckout{client: c, taskQueue: orderworkflows.CheckoutTaskQueue}
}

func (o *TemporalCheckout) Checkout(ctx context.Context, userID string, delivery domain.DeliveryInfo) (*domain.Order, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal checkout not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: %w", ordersapp.ErrInvalidInput, domain.ErrEmptyUserID)
	}
	delivery = delivery.Normalize()
	if err := delivery.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ordersapp.ErrInvalidInput, err)
	}
	traceComponent := workflowTraceComponent(ctx)
	workflowID := fmt.Sprintf("order-checkout-%s-%s", userID, traceComponent)
	// A replayed request within the same trace attaches to the first run instead of ordering twice.
	options := client.StartWorkflowOptions{
		ID:                    workflowID,
		TaskQueue:             o.taskQueue,
		WorkflowIDReusePolicy: enumspb.WORKFLOW_ID_REUSE_POLICY_REJECT_DUPLICATE,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		orderworkflows.CheckoutWorkflowName,
		orderworkflows.CheckoutWorkflowInput{UserID: userID, Delivery: delivery, TraceID: traceComponent},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if !errors.As(err, &alreadyStarted) {
			return nil, err
		}
		run = o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
	}
	var order domain.Order
	if err := run.Get(ctx, &order); err != nil {
		return nil, fromWorkflowError(err)
	}
	return &order, nil
}

// InlineCheckout runs checkout in-process without Temporal.
type InlineCheckout struct {
	service ports.Service
}

func NewInlineCheckout(service ports.Service) *InlineCheckout {
	return &InlineCheckout{service: service}
}

func (o *InlineCheckout) Checkout(ctx context.Context, userID string, delivery domain.DeliveryInfo) (*domain.Order, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline checkout not configured")
	}
	return o.service.PlaceOrder(ctx, userID, delivery)
}

// fromWorkflowError restores the application sentinels from typed activity failures.
func fromWorkflowError(err error) error {
	var appErr *temporal.ApplicationError
	if !errors.As(err, &appErr) {
		return err
	}
	switch appErr.Type() {
	case orderactivities.EmptyCartErrorType:
		return ordersapp.ErrEmptyCart
	case orderactivities.ValidationErrorType:
		var fields domain.FieldErrors
		if appErr.HasDetails() && appErr.Details(&fields) == nil && len(fields) > 0 {
			return fmt.Errorf("%w: %w", ordersapp.ErrInvalidInput, fields)
		}
		return fmt.Errorf("%w: %s", ordersapp.ErrInvalidInput, appErr.Message())
	default:
		return err
	}
}

func workflowTraceComponent(ctx context.Context) string {
	if traceID := workflowTraceID(ctx); traceID != "" {
		return traceID
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanFromContext(ctx).SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
