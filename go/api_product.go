package storefrontserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	catalogmapper "github.com/Apurer/go-storefront-api/internal/domains/catalog/adapters/http/mapper"
	catalogdomain "github.com/Apurer/go-storefront-api/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/go-storefront-api/internal/domains/catalog/ports"
)

// ProductAPI serves the public catalog.
type ProductAPI struct {
	service catalogports.Service
}

func NewProductAPI(service catalogports.Service) ProductAPI {
	return ProductAPI{service: service}
}

// Get /api/products
// Lists products, optionally filtered by category
func (api *ProductAPI) ListProducts(c *gin.Context) {
	var (
		products []*catalogdomain.Product
		err      error
	)
	if category := strings.TrimSpace(c.Query("category")); category != "" {
		products, err = api.service.ListByCategory(c.Request.Context(), category)
	} else {
		products, err = api.service.ListAll(c.Request.Context())
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": catalogmapper.FromDomainProducts(products)})
}

// Get /api/products/:id
func (api *ProductAPI) GetProduct(c *gin.Context) {
	id, ok := bindUUIDParam(c, "id")
	if !ok {
		return
	}
	product, err := api.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": catalogmapper.FromDomainProduct(product)})
}

// Post /api/seed-products
// Loads the sample catalog when the products table is empty
func (api *ProductAPI) SeedProducts(c *gin.Context) {
	created, err := api.service.Seed(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	message := "Products seeded successfully"
	if created == 0 {
		message = "Products already exist"
	}
	c.JSON(http.StatusOK, gin.H{"message": message, "created": created})
}
