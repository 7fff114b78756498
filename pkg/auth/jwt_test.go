package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret string, claims *Claims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestValidateToken(t *testing.T) {
	t.Setenv("ACCESS_SECRET", "test-secret")

	tokenString := signToken(t, "test-secret", &Claims{
		CustomerID: 42,
		Email:      "buyer@example.com",
		Role:       "customer",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	claims, err := ValidateToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.CustomerID)
	assert.Equal(t, "buyer@example.com", claims.Email)
	assert.Equal(t, "customer", claims.Role)
}

func TestValidateToken_Expired(t *testing.T) {
	t.Setenv("ACCESS_SECRET", "test-secret")

	tokenString := signToken(t, "test-secret", &Claims{
		CustomerID: 42,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})

	_, err := ValidateToken(tokenString)
	assert.Error(t, err)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	t.Setenv("ACCESS_SECRET", "test-secret")

	tokenString := signToken(t, "other-secret", &Claims{
		CustomerID: 42,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	_, err := ValidateToken(tokenString)
	assert.Error(t, err)
}

func TestValidateToken_NoSecretConfigured(t *testing.T) {
	t.Setenv("ACCESS_SECRET", "")

	_, err := ValidateToken("whatever")
	assert.Error(t, err)
}
