package storefrontserver

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	ordermapper "github.com/Apurer/go-storefront-api/internal/domains/orders/adapters/http/mapper"
	ordersdomain "github.com/Apurer/go-storefront-api/internal/domains/orders/domain"
	ordersports "github.com/Apurer/go-storefront-api/internal/domains/orders/ports"
)

// OrderAPI wires HTTP transport with the order service and the checkout orchestrator.
type OrderAPI struct {
	service  ordersports.Service
	checkout ordersports.CheckoutOrchestrator
}

func NewOrderAPI(service ordersports.Service, checkout ordersports.CheckoutOrchestrator) OrderAPI {
	return OrderAPI{service: service, checkout: checkout}
}

// Post /api/orders
// Converts the cart into an order
func (api *OrderAPI) PlaceOrder(c *gin.Context) {
	var payload ordermapper.Delivery
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	order, err := api.placeOrder(c.Request.Context(), currentUserID(c), ordermapper.ToDomainDelivery(payload))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"order": ordermapper.FromDomainOrder(order)})
}

func (api *OrderAPI) placeOrder(ctx context.Context, userID string, delivery ordersdomain.DeliveryInfo) (*ordersdomain.Order, error) {
	if api.checkout != nil {
		return api.checkout.Checkout(ctx, userID, delivery)
	}
	return api.service.PlaceOrder(ctx, userID, delivery)
}

// Get /api/orders
func (api *OrderAPI) ListOrders(c *gin.Context) {
	orders, err := api.service.ListOrders(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": ordermapper.FromDomainOrders(orders)})
}

// Get /api/orders/:id
func (api *OrderAPI) GetOrder(c *gin.Context) {
	id, ok := bindUUIDParam(c, "id")
	if !ok {
		return
	}
	order, err := api.service.GetOrder(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": ordermapper.FromDomainOrder(order)})
}
