package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-storefront-api/internal/domains/orders/domain"
	"github.com/Apurer/go-storefront-api/internal/shared/pricing"
)

var (
	// ErrInvalidInput signals the checkout request violated an order invariant.
	ErrInvalidInput = errors.New("invalid order input")
	// ErrEmptyCart signals there was nothing purchasable to check out.
	ErrEmptyCart = errors.New("cart is empty")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrEmptyCart) || errors.Is(err, ErrInvalidInput) {
		return err
	}
	if errors.Is(err, domain.ErrInvalidDelivery) ||
		errors.Is(err, domain.ErrEmptyUserID) ||
		errors.Is(err, domain.ErrInvalidLineItem) ||
		errors.Is(err, pricing.ErrInvalidRate) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if errors.Is(err, domain.ErrNoItems) {
		return fmt.Errorf("%w: %w", ErrEmptyCart, err)
	}
	return err
}
