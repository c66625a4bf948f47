package domain

import (
	"errors"
	"sort"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidDelivery is matched by every FieldErrors value.
var ErrInvalidDelivery = errors.New("invalid delivery information")

const minPhoneDigits = 10

var validate = validator.New()

// DeliveryInfo is where and to whom an order ships.
type DeliveryInfo struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
	City      string
	ZipCode   string
	Notes     string
}

// FieldErrors maps field names to human readable messages.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+f[k])
	}
	return ErrInvalidDelivery.Error() + " (" + strings.Join(parts, "; ") + ")"
}

func (f FieldErrors) Is(target error) bool { return target == ErrInvalidDelivery }

// Normalize trims surrounding whitespace from every field.
func (d DeliveryInfo) Normalize() DeliveryInfo {
	return DeliveryInfo{
		FirstName: strings.TrimSpace(d.FirstName),
		LastName:  strings.TrimSpace(d.LastName),
		Email:     strings.TrimSpace(d.Email),
		Phone:     strings.TrimSpace(d.Phone),
		Address:   strings.TrimSpace(d.Address),
		City:      strings.TrimSpace(d.City),
		ZipCode:   strings.TrimSpace(d.ZipCode),
		Notes:     strings.TrimSpace(d.Notes),
	}
}

// Validate returns FieldErrors describing every failing field, or nil.
func (d DeliveryInfo) Validate() error {
	errs := FieldErrors{}
	required := map[string]string{
		"firstName": d.FirstName,
		"lastName":  d.LastName,
		"address":   d.Address,
		"city":      d.City,
		"zipCode":   d.ZipCode,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			errs[field] = "is required"
		}
	}
	if validate.Var(d.Email, "required,email") != nil {
		errs["email"] = "must be a valid email address"
	}
	if countDigits(d.Phone) < minPhoneDigits {
		errs["phone"] = "must contain at least 10 digits"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}
