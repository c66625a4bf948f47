package domain

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	HashCost = bcrypt.MinCost
}

func TestNewUserTrimsAndValidates(t *testing.T) {
	user, err := NewUser("id-1", "  ada  ", " ada@example.com ", "Ada", "Lovelace")
	require.NoError(t, err)
	assert.Equal(t, "ada", user.Username)
	assert.Equal(t, "ada@example.com", user.Email)
}

func TestNewUserCollectsFieldErrors(t *testing.T) {
	_, err := NewUser("id-1", "ab", "not-an-email", "", strings.Repeat("x", 51))
	require.ErrorIs(t, err, ErrInvalidUser)

	var fields FieldErrors
	require.True(t, errors.As(err, &fields))
	assert.Len(t, fields, 4)
	assert.Contains(t, fields, "username")
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "firstName")
	assert.Contains(t, fields, "lastName")
}

func TestPasswordIsHashed(t *testing.T) {
	user, err := NewUser("id-1", "ada", "ada@example.com", "Ada", "Lovelace")
	require.NoError(t, err)

	require.NoError(t, user.SetPassword("secret1"))
	assert.NotEqual(t, "secret1", user.PasswordHash)
	assert.True(t, user.CheckPassword("secret1"))
	assert.False(t, user.CheckPassword("secret2"))
	assert.False(t, user.CheckPassword(""))
}

func TestShortPasswordRejected(t *testing.T) {
	user := &User{}
	err := user.SetPassword("12345")
	require.ErrorIs(t, err, ErrInvalidUser)
	assert.Empty(t, user.PasswordHash)
}

func TestSessionExpiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	session, err := NewSession("u1", now, time.Hour)
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.False(t, session.Expired(now.Add(59*time.Minute)))
	assert.True(t, session.Expired(now.Add(time.Hour)))

	other, err := NewSession("u1", now, time.Hour)
	require.NoError(t, err)
	assert.NotEqual(t, session.Token, other.Token)
}
