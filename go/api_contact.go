package storefrontserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	contactmapper "github.com/Apurer/go-storefront-api/internal/domains/contact/adapters/http/mapper"
	contactports "github.com/Apurer/go-storefront-api/internal/domains/contact/ports"
)

type ContactAPI struct {
	service contactports.Service
}

func NewContactAPI(service contactports.Service) ContactAPI {
	return ContactAPI{service: service}
}

// Post /api/contact
func (api *ContactAPI) SubmitContact(c *gin.Context) {
	var payload contactmapper.ContactForm
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	contact, err := api.service.Submit(c.Request.Context(), contactmapper.ToSubmitInput(payload))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"contact": contactmapper.FromDomainContact(contact)})
}
