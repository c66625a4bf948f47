package domain

import (
	"errors"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidContact is matched by every FieldErrors value.
var ErrInvalidContact = errors.New("invalid contact message")

const maxNameLen = 100

var validate = validator.New()

// Contact is a message left through the contact form. It is never mutated.
type Contact struct {
	ID          string
	Name        string
	Email       string
	Message     string
	OrderNumber *string
	Topic       *string
	CreatedAt   time.Time
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
	return ErrInvalidContact.Error() + " (" + strings.Join(parts, "; ") + ")"
}

func (f FieldErrors) Is(target error) bool { return target == ErrInvalidContact }

// NewContact trims the input and validates it. Blank optional fields become nil.
func NewContact(id, name, email, message, orderNumber, topic string, now time.Time) (*Contact, error) {
	c := &Contact{
		ID:          id,
		Name:        strings.TrimSpace(name),
		Email:       strings.TrimSpace(email),
		Message:     strings.TrimSpace(message),
		OrderNumber: optional(orderNumber),
		Topic:       optional(topic),
		CreatedAt:   now,
	}
	errs := FieldErrors{}
	if n := utf8.RuneCountInString(c.Name); n < 1 || n > maxNameLen {
		errs["name"] = "must be between 1 and 100 characters"
	}
	if validate.Var(c.Email, "required,email") != nil {
		errs["email"] = "must be a valid email address"
	}
	if c.Message == "" {
		errs["message"] = "is required"
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return c, nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
