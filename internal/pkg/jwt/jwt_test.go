package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken(t *testing.T) {
	svc := NewJWTService("test-secret-key-for-jwt", time.Hour)

	before := time.Now().Unix()
	token, expiresAt, err := svc.GenerateAccessToken("admin", "admin@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.GreaterOrEqual(t, expiresAt, before+3600)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", decoded.Subject())

	tokenType, ok := decoded.Get("type")
	require.True(t, ok)
	assert.Equal(t, "access", tokenType)

	email, ok := decoded.Get("email")
	require.True(t, ok)
	assert.Equal(t, "admin@example.com", email)
}

func TestGenerateAccessToken_WrongSecretRejected(t *testing.T) {
	token, _, err := NewJWTService("secret-one", time.Hour).GenerateAccessToken("admin", "admin@example.com")
	require.NoError(t, err)

	_, err = NewJWTService("secret-two", time.Hour).JWTAuth().Decode(token)
	assert.Error(t, err)
}
