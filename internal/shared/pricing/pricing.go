// Package pricing holds the money arithmetic shared by the cart summary and checkout.
package pricing

import (
	"errors"

	"github.com/shopspring/decimal"
)

// DefaultTaxRate is the flat sales tax applied at checkout.
var DefaultTaxRate = decimal.RequireFromString("0.08")

// ErrInvalidRate is returned for negative tax rates.
var ErrInvalidRate = errors.New("tax rate must be greater or equal to zero")

// Totals is the priced breakdown of a set of lines.
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// Line is anything with a unit price and a quantity.
type Line interface {
	UnitPrice() decimal.Decimal
	Units() int
}

// LineTotal returns unitPrice × quantity rounded to cents.
func LineTotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}

// Compute sums the lines and applies rate. Tax is rounded half away from zero to 2 digits.
func Compute[L Line](lines []L, rate decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(LineTotal(line.UnitPrice(), line.Units()))
	}
	tax := subtotal.Mul(rate).Round(2)
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}

// ValidateRate rejects negative rates.
func ValidateRate(rate decimal.Decimal) error {
	if rate.IsNegative() {
		return ErrInvalidRate
	}
	return nil
}
