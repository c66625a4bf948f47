package storefrontserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	cartmapper "github.com/Apurer/go-storefront-api/internal/domains/cart/adapters/http/mapper"
	cartports "github.com/Apurer/go-storefront-api/internal/domains/cart/ports"
)

// CartAPI serves the authenticated user's cart.
type CartAPI struct {
	service cartports.Service
}

func NewCartAPI(service cartports.Service) CartAPI {
	return CartAPI{service: service}
}

// Get /api/cart
func (api *CartAPI) GetCart(c *gin.Context) {
	summary, err := api.service.Summary(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"cartItems": cartmapper.FromDomainItems(summary.Items),
		"summary":   cartmapper.FromDomainSummary(summary),
	})
}

// Post /api/cart
func (api *CartAPI) AddToCart(c *gin.Context) {
	var payload AddToCartRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	quantity := 1
	if payload.Quantity != nil {
		quantity = *payload.Quantity
	}
	line, err := api.service.AddItem(c.Request.Context(), currentUserID(c), payload.ProductID, quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"cartItem": cartmapper.FromDomainLine(line)})
}

// Put /api/cart/:productId
func (api *CartAPI) UpdateCartItem(c *gin.Context) {
	productID, ok := bindUUIDParam(c, "productId")
	if !ok {
		return
	}
	var payload UpdateCartItemRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	line, err := api.service.SetQuantity(c.Request.Context(), currentUserID(c), productID, *payload.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cartItem": cartmapper.FromDomainLine(line)})
}

// Delete /api/cart/:productId
func (api *CartAPI) RemoveCartItem(c *gin.Context) {
	productID, ok := bindUUIDParam(c, "productId")
	if !ok {
		return
	}
	if err := api.service.RemoveItem(c.Request.Context(), currentUserID(c), productID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart"})
}

// Delete /api/cart
func (api *CartAPI) ClearCart(c *gin.Context) {
	if err := api.service.Clear(c.Request.Context(), currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}
