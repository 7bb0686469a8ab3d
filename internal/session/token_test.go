package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 7,
		"exp":     exp.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestTokenExpired(t *testing.T) {
	t.Run("expired token", func(t *testing.T) {
		assert.True(t, TokenExpired(signedToken(t, time.Now().Add(-time.Hour))))
	})

	t.Run("valid token", func(t *testing.T) {
		assert.False(t, TokenExpired(signedToken(t, time.Now().Add(time.Hour))))
	})

	t.Run("no exp claim", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": 7})
		signed, err := token.SignedString([]byte("test-secret"))
		require.NoError(t, err)
		assert.False(t, TokenExpired(signed))
	})

	t.Run("not a JWT", func(t *testing.T) {
		assert.False(t, TokenExpired("opaque-token"))
		assert.False(t, TokenExpired(""))
	})
}
