package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	hashed, err := HashPassword("password123", bcrypt.MinCost)

	assert.NoError(t, err)
	assert.NotEmpty(t, hashed)
	assert.NotEqual(t, "password123", hashed)
}

func TestComparePassword(t *testing.T) {
	hashed, _ := HashPassword("password123", bcrypt.MinCost)

	assert.NoError(t, ComparePassword(hashed, "password123"))
	assert.Error(t, ComparePassword(hashed, "wrongpassword"))
}

func TestComparePassword_InvalidHash(t *testing.T) {
	assert.Error(t, ComparePassword("invalidhash", "password123"))
}
