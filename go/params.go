package storefrontserver

import (
	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	apierrors "github.com/Apurer/go-storefront-api/internal/shared/errors"
)

// bindUUIDParam binds a simple-style path parameter into a UUID, answering 400 on failure.
func bindUUIDParam(c *gin.Context, name string) (string, bool) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		apierrors.Respond(c, apierrors.ErrBadRequest.WithDetail("Invalid format for parameter "+name))
		return "", false
	}
	return id.String(), true
}
