// Package auth provides token issuance, password hashing, and request
// identity plumbing.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token errors.
var (
	// ErrInvalidToken indicates the token is malformed, tampered with,
	// or expired.
	ErrInvalidToken = errors.New("invalid token")
)

// Claims carries the account identifier inside a signed token.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// GenerateToken signs an HS256 token embedding the account identifier.
// A non-positive ttl issues a token without an expiry claim.
func GenerateToken(userID string, secret []byte, ttl time.Duration) (string, error) {
	claims := Claims{UserID: userID}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// VerifyToken parses and validates a signed token, returning the
// embedded account identifier.
func VerifyToken(tokenString string, secret []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil {
		return "", ErrInvalidToken
	}
	if !token.Valid || claims.UserID == "" {
		return "", ErrInvalidToken
	}

	return claims.UserID, nil
}
