package domain

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContact(t *testing.T) {
	now := time.Now()
	c, err := NewContact("c1", " Ada ", "ada@example.com", " Where is my order? ", "ORD-1", "  ", now)
	require.NoError(t, err)
	assert.Equal(t, "Ada", c.Name)
	assert.Equal(t, "Where is my order?", c.Message)
	require.NotNil(t, c.OrderNumber)
	assert.Equal(t, "ORD-1", *c.OrderNumber)
	assert.Nil(t, c.Topic)
}

func TestNewContactFieldErrors(t *testing.T) {
	_, err := NewContact("c1", strings.Repeat("a", 101), "bad", "", "", "", time.Now())
	require.ErrorIs(t, err, ErrInvalidContact)
	var fields FieldErrors
	require.True(t, errors.As(err, &fields))
	assert.Len(t, fields, 3)
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "message")
}
