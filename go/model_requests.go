package storefrontserver

// AddToCartRequest adds quantity units of a product. Quantity defaults to 1.
type AddToCartRequest struct {
	ProductID string `json:"productId" binding:"required,uuid"`
	Quantity  *int   `json:"quantity,omitempty" binding:"omitempty,max=999"`
}

// UpdateCartItemRequest overwrites a line's quantity; zero removes the line.
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required,max=999"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}
