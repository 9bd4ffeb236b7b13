package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("foo123")
	require.NoError(t, err)
	assert.NotEqual(t, "foo123", hash)

	assert.NoError(t, h.Compare(hash, "foo123"))
	assert.Error(t, h.Compare(hash, "foo124"))
}

func TestNewBcryptHasherClampsCost(t *testing.T) {
	assert.Equal(t, DefaultCost, NewBcryptHasher(0).Cost)
	assert.Equal(t, DefaultCost, NewBcryptHasher(99).Cost)
	assert.Equal(t, 12, NewBcryptHasher(12).Cost)
}
