package orders

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"

	cartmemory "github.com/Apurer/go-storefront-api/internal/domains/cart/adapters/memory"
	cartapp "github.com/Apurer/go-storefront-api/internal/domains/cart/application"
	catalogmemory "github.com/Apurer/go-storefront-api/internal/domains/catalog/adapters/memory"
	catalogdomain "github.com/Apurer/go-storefront-api/internal/domains/catalog/domain"
	ordersmemory "github.com/Apurer/go-storefront-api/internal/domains/orders/adapters/memory"
	ordersapp "github.com/Apurer/go-storefront-api/internal/domains/orders/application"
	ordersdomain "github.com/Apurer/go-storefront-api/internal/domains/orders/domain"
	ordersports "github.com/Apurer/go-storefront-api/internal/domains/orders/ports"
	orderactivities "github.com/Apurer/go-storefront-api/internal/durable/temporal/activities/orders"
)

// lostAckService commits through the real service. With dropFirst set it reports a
// transient failure for the first successful attempt, as if the activity result was lost.
type lostAckService struct {
	ordersports.Service
	dropFirst bool
	attempts  atomic.Int32
}

func (s *lostAckService) CommitOrder(ctx context.Context, orderID, userID string, delivery ordersdomain.DeliveryInfo) (*ordersdomain.Order, error) {
	order, err := s.Service.CommitOrder(ctx, orderID, userID, delivery)
	if s.attempts.Add(1) == 1 && s.dropFirst && err == nil {
		return nil, errors.New("connection reset by peer")
	}
	return order, err
}

type CheckoutWorkflowTestSuite struct {
	suite.Suite
	testsuite.WorkflowTestSuite

	env     *testsuite.TestWorkflowEnvironment
	cart    *cartapp.Service
	orders  *ordersmemory.Repository
	service *lostAckService
}

func TestCheckoutWorkflow(t *testing.T) {
	suite.Run(t, new(CheckoutWorkflowTestSuite))
}

func (s *CheckoutWorkflowTestSuite) SetupTest() {
	catalog := catalogmemory.NewRepository()
	product, err := catalogdomain.NewProduct("p1", "Cable", "accessories", decimal.NewFromInt(10), 5)
	s.Require().NoError(err)
	_, err = catalog.Save(context.Background(), product)
	s.Require().NoError(err)

	s.cart = cartapp.NewService(cartmemory.NewRepository(), catalog)
	s.orders = ordersmemory.NewRepository()
	service := ordersapp.NewService(s.orders, s.cart, catalog, ordersapp.WithTransactor(ordersmemory.NewTransactor()))
	s.service = &lostAckService{Service: service}
	activities := orderactivities.NewActivities(s.service)

	s.env = s.NewTestWorkflowEnvironment()
	s.env.RegisterActivityWithOptions(activities.CommitOrder, activity.RegisterOptions{Name: orderactivities.CommitOrderActivityName})
	s.env.RegisterActivityWithOptions(activities.CompleteCheckout, activity.RegisterOptions{Name: orderactivities.CompleteCheckoutActivityName})
}

func (s *CheckoutWorkflowTestSuite) AfterTest(_, _ string) {
	s.env.AssertExpectations(s.T())
}

func (s *CheckoutWorkflowTestSuite) input() CheckoutWorkflowInput {
	return CheckoutWorkflowInput{
		UserID: "u1",
		Delivery: ordersdomain.DeliveryInfo{
			FirstName: "Ada",
			LastName:  "Lovelace",
			Email:     "ada@example.com",
			Phone:     "5551234567",
			Address:   "1 Analytical Way",
			City:      "London",
			ZipCode:   "12345",
		},
	}
}

func (s *CheckoutWorkflowTestSuite) TestCommitRetryAfterLostResultPersistsOneOrder() {
	s.service.dropFirst = true
	_, err := s.cart.AddItem(context.Background(), "u1", "p1", 2)
	s.Require().NoError(err)

	s.env.ExecuteWorkflow(CheckoutWorkflow, s.input())

	s.Require().True(s.env.IsWorkflowCompleted())
	s.Require().NoError(s.env.GetWorkflowError())
	s.Equal(int32(2), s.service.attempts.Load())
	var order ordersdomain.Order
	s.Require().NoError(s.env.GetWorkflowResult(&order))

	stored, err := s.orders.ListByUser(context.Background(), "u1")
	s.Require().NoError(err)
	s.Require().Len(stored, 1)
	s.Equal(order.ID, stored[0].ID)
}

func (s *CheckoutWorkflowTestSuite) TestCommitsOrderAndClearsCart() {
	_, err := s.cart.AddItem(context.Background(), "u1", "p1", 2)
	s.Require().NoError(err)

	s.env.ExecuteWorkflow(CheckoutWorkflow, s.input())

	s.Require().True(s.env.IsWorkflowCompleted())
	s.Require().NoError(s.env.GetWorkflowError())
	var order ordersdomain.Order
	s.Require().NoError(s.env.GetWorkflowResult(&order))
	s.Equal("u1", order.UserID)
	s.Equal("21.60", order.Total.StringFixed(2))

	lines, err := s.cart.ListLines(context.Background(), "u1")
	s.Require().NoError(err)
	s.Empty(lines)

	stored, err := s.orders.GetByID(context.Background(), order.ID)
	s.Require().NoError(err)
	s.Equal(order.ID, stored.ID)
}

func (s *CheckoutWorkflowTestSuite) TestEmptyCartIsNotRetried() {
	s.env.ExecuteWorkflow(CheckoutWorkflow, s.input())

	s.Require().True(s.env.IsWorkflowCompleted())
	err := s.env.GetWorkflowError()
	s.Require().Error(err)
	var appErr *temporal.ApplicationError
	s.Require().True(errors.As(err, &appErr))
	s.Equal(orderactivities.EmptyCartErrorType, appErr.Type())
}

func (s *CheckoutWorkflowTestSuite) TestInvalidDeliveryCarriesFieldErrors() {
	_, err := s.cart.AddItem(context.Background(), "u1", "p1", 1)
	s.Require().NoError(err)
	input := s.input()
	input.Delivery.Email = "not-an-email"

	s.env.ExecuteWorkflow(CheckoutWorkflow, input)

	err = s.env.GetWorkflowError()
	s.Require().Error(err)
	var appErr *temporal.ApplicationError
	s.Require().True(errors.As(err, &appErr))
	s.Equal(orderactivities.ValidationErrorType, appErr.Type())
	var fields ordersdomain.FieldErrors
	s.Require().NoError(appErr.Details(&fields))
	s.Contains(fields, "email")
}

func (s *CheckoutWorkflowTestSuite) TestPostCommitFailureStillReturnsOrder() {
	_, err := s.cart.AddItem(context.Background(), "u1", "p1", 1)
	s.Require().NoError(err)
	s.env.OnActivity(orderactivities.CompleteCheckoutActivityName, mock.Anything, mock.Anything).
		Return(errors.New("broker down"))

	s.env.ExecuteWorkflow(CheckoutWorkflow, s.input())

	s.Require().True(s.env.IsWorkflowCompleted())
	s.Require().NoError(s.env.GetWorkflowError())
	var order ordersdomain.Order
	s.Require().NoError(s.env.GetWorkflowResult(&order))
	s.NotEmpty(order.ID)
}
