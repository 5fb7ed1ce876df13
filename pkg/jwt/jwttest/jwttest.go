// Package jwttest signs bearer tokens shaped like the auth provider's, for
// tests and local development. Production code only verifies tokens.
package jwttest

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SignToken returns an HS256 token for userID valid for ttl, and its token id.
func SignToken(secret, userID, email string, ttl time.Duration) (string, string, error) {
	tokenID := uuid.NewString()
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":  userID,
		"email":    email,
		"token_id": tokenID,
		"sub":      userID,
		"exp":      jwt.NewNumericDate(now.Add(ttl)),
		"iat":      jwt.NewNumericDate(now),
		"nbf":      jwt.NewNumericDate(now),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", "", err
	}
	return signed, tokenID, nil
}
