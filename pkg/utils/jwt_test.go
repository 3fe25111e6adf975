package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	InitJWT("test-access-secret", "test-refresh-secret", 15*time.Minute, 168*time.Hour)

	token, err := GenerateAccessToken(42, "frontdesk", "staff")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "frontdesk", claims.Username)
	assert.Equal(t, "staff", claims.Role)
}

func TestValidateAccessTokenRejectsExpired(t *testing.T) {
	InitJWT("test-access-secret", "test-refresh-secret", -time.Minute, 168*time.Hour)

	token, err := GenerateAccessToken(1, "admin", "admin")
	require.NoError(t, err)

	_, err = ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestValidateAccessTokenRejectsTampered(t *testing.T) {
	InitJWT("test-access-secret", "test-refresh-secret", 15*time.Minute, 168*time.Hour)

	token, err := GenerateAccessToken(1, "admin", "admin")
	require.NoError(t, err)

	_, err = ValidateAccessToken(token + "x")
	assert.Error(t, err)
}

func TestHashRefreshToken(t *testing.T) {
	InitJWT("a", "b", time.Minute, time.Hour)

	token, err := GenerateRefreshToken()
	require.NoError(t, err)

	hash := HashRefreshToken(token)
	assert.Len(t, hash, 64)
	assert.Equal(t, hash, HashRefreshToken(token))
	assert.NotEqual(t, hash, HashRefreshToken(token+"x"))
}
