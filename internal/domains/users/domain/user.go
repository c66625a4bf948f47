package domain

import (
	"errors"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidUser is matched by every FieldErrors value.
	ErrInvalidUser  = errors.New("invalid user")
	ErrWeakPassword = errors.New("password must be at least 6 characters")
)

const (
	minUsernameLen = 3
	maxUsernameLen = 50
	maxNameLen     = 50
	minPasswordLen = 6
)

// HashCost is the bcrypt work factor used by SetPassword.
var HashCost = bcrypt.DefaultCost

var validate = validator.New()

// User is a registered storefront customer.
type User struct {
	ID           string
	Username     string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
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
	return ErrInvalidUser.Error() + " (" + strings.Join(parts, "; ") + ")"
}

func (f FieldErrors) Is(target error) bool { return target == ErrInvalidUser }

// NewUser builds a user with a trimmed, validated profile. The password is set separately.
func NewUser(id, username, email, firstName, lastName string) (*User, error) {
	user := &User{
		ID:        id,
		Username:  strings.TrimSpace(username),
		Email:     strings.TrimSpace(email),
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	return user, nil
}

// Validate checks the profile fields.
func (u *User) Validate() error {
	errs := FieldErrors{}
	if n := utf8.RuneCountInString(u.Username); n < minUsernameLen || n > maxUsernameLen {
		errs["username"] = "must be between 3 and 50 characters"
	}
	if validate.Var(u.Email, "required,email") != nil {
		errs["email"] = "must be a valid email address"
	}
	if n := utf8.RuneCountInString(u.FirstName); n < 1 || n > maxNameLen {
		errs["firstName"] = "must be between 1 and 50 characters"
	}
	if n := utf8.RuneCountInString(u.LastName); n < 1 || n > maxNameLen {
		errs["lastName"] = "must be between 1 and 50 characters"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// SetPassword stores a bcrypt hash of password.
func (u *User) SetPassword(password string) error {
	if utf8.RuneCountInString(password) < minPasswordLen {
		return FieldErrors{"password": ErrWeakPassword.Error()}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), HashCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether password matches the stored hash.
func (u *User) CheckPassword(password string) bool {
	if u.PasswordHash == "" || password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}
