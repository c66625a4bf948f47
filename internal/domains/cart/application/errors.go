package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-storefront-api/internal/domains/cart/domain"
	"github.com/Apurer/go-storefront-api/internal/domains/cart/ports"
	catalogports "github.com/Apurer/go-storefront-api/internal/domains/catalog/ports"
)

var (
	// ErrInvalidInput signals the request violated a cart invariant.
	ErrInvalidInput = errors.New("invalid cart input")
	// ErrProductNotFound signals the product to add does not exist.
	ErrProductNotFound = errors.New("product not found")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyUserID) ||
		errors.Is(err, domain.ErrEmptyProductID) ||
		errors.Is(err, domain.ErrInvalidQuantity) ||
		errors.Is(err, domain.ErrNegativeQuantity) ||
		errors.Is(err, domain.ErrQuantityTooLarge) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if errors.Is(err, catalogports.ErrNotFound) || errors.Is(err, ports.ErrProductMissing) {
		return fmt.Errorf("%w: %w", ErrProductNotFound, err)
	}
	return err
}
