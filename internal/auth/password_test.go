package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("test123", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "test123", hash)

	assert.NoError(t, CheckPassword("test123", hash))
	assert.ErrorIs(t, CheckPassword("wrong", hash), ErrInvalidPassword)
}

func TestHashPassword_TooLong(t *testing.T) {
	_, err := HashPassword(strings.Repeat("x", 73), bcrypt.MinCost)
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	err := CheckPassword("test123", "not-a-bcrypt-hash")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidPassword)
}
