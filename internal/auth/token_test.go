package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	token, exp, err := tm.GenerateToken("staff-1", "r1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, exp.After(time.Now()))

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "staff-1", claims.StaffID)
	assert.Equal(t, "r1", claims.Role)
}

func TestParseToken_WrongSecret(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	other := NewTokenManager("other-secret", 60)

	token, _, err := tm.GenerateToken("staff-1", "r1")
	require.NoError(t, err)

	_, err = other.ParseToken(token)
	assert.Error(t, err)
}

func TestParseToken_Garbage(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	_, err := tm.ParseToken("not.a.token")
	assert.Error(t, err)
}
