package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is how long an issued bearer token stays valid.
const TokenTTL = 24 * time.Hour

var jwtSecret string

func InitJWTSecret(secret string) error {
	if secret == "" {
		return fmt.Errorf("JWT_SECRET is not set")
	}
	jwtSecret = secret
	return nil
}

// Claims is the identity a verified token carries.
type Claims struct {
	ID   uint
	Role string
}

func GenerateJWT(id uint, role string) (string, error) {
	claims := jwt.MapClaims{
		"id":   id,
		"role": role,
		"exp":  time.Now().Add(TokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret))
}

func VerifyJWT(tokenString string) (Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})

	if err != nil || !token.Valid {
		return Claims{}, fmt.Errorf("invalid or expired token")
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, fmt.Errorf("invalid token claims")
	}

	idFloat, ok := mapClaims["id"].(float64)
	if !ok {
		return Claims{}, fmt.Errorf("invalid id in token claims")
	}

	role, ok := mapClaims["role"].(string)
	if !ok {
		return Claims{}, fmt.Errorf("invalid role in token claims")
	}

	return Claims{ID: uint(idFloat), Role: role}, nil
}
