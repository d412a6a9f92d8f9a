// Package auth provides JWT issuance and authorization middleware for the
// HTTP API. Tokens are signed with HS256 using the JWT_SECRET environment
// variable and carry the user id, email, and role as claims.
package auth

import (
	"errors"
	"os"
	"strings"
	"time"

	"newsdesk/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is how long an issued token stays valid.
const TokenTTL = 24 * time.Hour

// ErrInvalidToken is returned when a bearer token is missing, malformed,
// expired, or carries unexpected claims.
var ErrInvalidToken = errors.New("invalid token")

// GenerateToken issues a signed JWT for the user.
func GenerateToken(user *entity.User) (string, error) {
	secret := []byte(os.Getenv("JWT_SECRET"))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  user.Role,
		"exp":   time.Now().Add(TokenTTL).Unix(),
	})
	return token.SignedString(secret)
}

// parseBearer validates the Authorization header and returns the user id
// and role from the token claims.
func parseBearer(authz string, secret []byte) (string, string, error) {
	const prefix = "Bearer "
	if !strings.HasPrefix(authz, prefix) {
		return "", "", errors.New("missing bearer token")
	}
	tokenString := strings.TrimPrefix(authz, prefix)

	tok, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !tok.Valid {
		return "", "", ErrInvalidToken
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", ErrInvalidToken
	}
	if exp, ok := claims["exp"].(float64); !ok || int64(exp) < time.Now().Unix() {
		return "", "", errors.New("token expired")
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", "", ErrInvalidToken
	}
	role, ok := claims["role"].(string)
	if !ok || role == "" {
		return "", "", ErrInvalidToken
	}
	return sub, role, nil
}
