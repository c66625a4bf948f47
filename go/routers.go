package storefrontserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
	// Protected routes require an authenticated session.
	Protected bool
}

// ApiHandleFunctions groups the handlers of every API section.
type ApiHandleFunctions struct {
	ProductAPI ProductAPI
	CartAPI    CartAPI
	OrderAPI   OrderAPI
	ContactAPI ContactAPI
	AuthAPI    AuthAPI
}

// NewRouter returns a new router. Middleware runs before every route; protected routes also run the session check.
func NewRouter(handleFunctions ApiHandleFunctions, middleware ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware...)
	router.GET("/healthz", Healthz)

	requireAuth := RequireAuth(handleFunctions.AuthAPI.service)
	api := router.Group("/api")
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		handlers := []gin.HandlerFunc{route.HandlerFunc}
		if route.Protected {
			handlers = append([]gin.HandlerFunc{requireAuth}, handlers...)
		}
		api.Handle(route.Method, route.Pattern, handlers...)
	}
	return router
}

// DefaultHandleFunc answers routes whose handler is not wired.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

// Healthz reports liveness.
func Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{"ListProducts", http.MethodGet, "/products", handleFunctions.ProductAPI.ListProducts, false},
		{"GetProduct", http.MethodGet, "/products/:id", handleFunctions.ProductAPI.GetProduct, false},
		{"SeedProducts", http.MethodPost, "/seed-products", handleFunctions.ProductAPI.SeedProducts, false},
		{"GetCart", http.MethodGet, "/cart", handleFunctions.CartAPI.GetCart, true},
		{"AddToCart", http.MethodPost, "/cart", handleFunctions.CartAPI.AddToCart, true},
		{"UpdateCartItem", http.MethodPut, "/cart/:productId", handleFunctions.CartAPI.UpdateCartItem, true},
		{"RemoveCartItem", http.MethodDelete, "/cart/:productId", handleFunctions.CartAPI.RemoveCartItem, true},
		{"ClearCart", http.MethodDelete, "/cart", handleFunctions.CartAPI.ClearCart, true},
		{"PlaceOrder", http.MethodPost, "/orders", handleFunctions.OrderAPI.PlaceOrder, true},
		{"ListOrders", http.MethodGet, "/orders", handleFunctions.OrderAPI.ListOrders, true},
		{"GetOrder", http.MethodGet, "/orders/:id", handleFunctions.OrderAPI.GetOrder, true},
		{"SubmitContact", http.MethodPost, "/contact", handleFunctions.ContactAPI.SubmitContact, false},
		{"Register", http.MethodPost, "/register", handleFunctions.AuthAPI.Register, false},
		{"Login", http.MethodPost, "/login", handleFunctions.AuthAPI.Login, false},
		{"Logout", http.MethodPost, "/logout", handleFunctions.AuthAPI.Logout, false},
		{"CurrentUser", http.MethodGet, "/user", handleFunctions.AuthAPI.CurrentUser, true},
	}
}
