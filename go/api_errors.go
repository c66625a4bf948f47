package storefrontserver

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"

	cartapp "github.com/Apurer/go-storefront-api/internal/domains/cart/application"
	cartports "github.com/Apurer/go-storefront-api/internal/domains/cart/ports"
	catalogapp "github.com/Apurer/go-storefront-api/internal/domains/catalog/application"
	catalogports "github.com/Apurer/go-storefront-api/internal/domains/catalog/ports"
	contactapp "github.com/Apurer/go-storefront-api/internal/domains/contact/application"
	contactdomain "github.com/Apurer/go-storefront-api/internal/domains/contact/domain"
	ordersapp "github.com/Apurer/go-storefront-api/internal/domains/orders/application"
	ordersdomain "github.com/Apurer/go-storefront-api/internal/domains/orders/domain"
	ordersports "github.com/Apurer/go-storefront-api/internal/domains/orders/ports"
	userapp "github.com/Apurer/go-storefront-api/internal/domains/users/application"
	userdomain "github.com/Apurer/go-storefront-api/internal/domains/users/domain"
	apierrors "github.com/Apurer/go-storefront-api/internal/shared/errors"
)

var responder = apierrors.NewChainedResponder("",
	mapCatalogError,
	mapCartError,
	mapOrderError,
	mapUserError,
	mapContactError,
)

// respondProblem maps a ProblemDetail through the shared responder.
func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	apierrors.Respond(c, problem)
}

// respondError maps domain errors to problems. Anything unmapped is logged and answered with an opaque 500.
func respondError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	if problem, ok := responder.Map(err); ok {
		responder.Respond(c, problem)
		return
	}
	slog.Default().LogAttrs(c.Request.Context(), slog.LevelError, "request failed",
		slog.String("method", c.Request.Method),
		slog.String("path", c.FullPath()),
		slog.String("error", err.Error()),
	)
	responder.RespondError(c, err)
}

func respondBindError(c *gin.Context, err error) {
	respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
}

func mapCatalogError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, catalogports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail("Product not found"), true
	case errors.Is(err, catalogapp.ErrInvalidInput):
		return apierrors.NewValidationProblem(err.Error(), nil), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapCartError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, cartapp.ErrProductNotFound):
		return apierrors.ErrNotFound.WithDetail("Product not found"), true
	case errors.Is(err, cartports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail("Cart item not found"), true
	case errors.Is(err, cartapp.ErrInvalidInput):
		return apierrors.NewValidationProblem(err.Error(), nil), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapOrderError(err error) (apierrors.ProblemDetail, bool) {
	var fields ordersdomain.FieldErrors
	switch {
	case errors.Is(err, ordersapp.ErrEmptyCart):
		return apierrors.ErrEmptyCart.WithDetail("Cart is empty"), true
	case errors.Is(err, ordersports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail("Order not found"), true
	case errors.As(err, &fields):
		return apierrors.NewValidationProblem("Invalid delivery information", fields), true
	case errors.Is(err, ordersapp.ErrInvalidInput):
		return apierrors.NewValidationProblem(err.Error(), nil), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapUserError(err error) (apierrors.ProblemDetail, bool) {
	var fields userdomain.FieldErrors
	switch {
	case errors.Is(err, userapp.ErrUsernameTaken):
		return apierrors.NewValidationProblem("Username already exists", map[string]string{"username": "Username already exists"}), true
	case errors.Is(err, userapp.ErrEmailTaken):
		return apierrors.NewValidationProblem("Email already exists", map[string]string{"email": "Email already exists"}), true
	case errors.As(err, &fields):
		return apierrors.NewValidationProblem("Invalid registration details", fields), true
	case errors.Is(err, userapp.ErrInvalidInput):
		return apierrors.NewValidationProblem(err.Error(), nil), true
	case errors.Is(err, userapp.ErrAuthentication):
		return apierrors.ErrUnauthorized.WithDetail("Invalid username or password"), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapContactError(err error) (apierrors.ProblemDetail, bool) {
	var fields contactdomain.FieldErrors
	switch {
	case errors.As(err, &fields):
		return apierrors.NewValidationProblem("Invalid contact form", fields), true
	case errors.Is(err, contactapp.ErrInvalidInput):
		return apierrors.NewValidationProblem(err.Error(), nil), true
	}
	return apierrors.ProblemDetail{}, false
}
