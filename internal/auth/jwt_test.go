package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerifyJWT(t *testing.T) {
	require.NoError(t, InitJWTSecret("test-secret"))

	token, err := GenerateJWT(42, "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := VerifyJWT(token)
	require.NoError(t, err)
	require.Equal(t, uint(42), claims.ID)
	require.Equal(t, "admin", claims.Role)
}

func TestVerifyJWT_WrongSecret(t *testing.T) {
	require.NoError(t, InitJWTSecret("test-secret"))

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   float64(1),
		"role": "admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := forged.SignedString([]byte("other-secret"))
	require.NoError(t, err)

	_, err = VerifyJWT(signed)
	require.Error(t, err)
}

func TestVerifyJWT_Expired(t *testing.T) {
	require.NoError(t, InitJWTSecret("test-secret"))

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   float64(1),
		"role": "user",
		"exp":  time.Now().Add(-time.Minute).Unix(),
	})
	signed, err := expired.SignedString([]byte(jwtSecret))
	require.NoError(t, err)

	_, err = VerifyJWT(signed)
	require.Error(t, err)
}

func TestVerifyJWT_MissingClaims(t *testing.T) {
	require.NoError(t, InitJWTSecret("test-secret"))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(jwtSecret))
	require.NoError(t, err)

	_, err = VerifyJWT(signed)
	require.Error(t, err)
}

func TestVerifyJWT_Garbage(t *testing.T) {
	require.NoError(t, InitJWTSecret("test-secret"))

	_, err := VerifyJWT("not-a-token")
	require.Error(t, err)
}
