package jwt

import (
	"testing"
	"time"

	"health-management/config"
	"health-management/pkg/jwt/jwttest"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{Secret: "secret"})

	token, tokenID, err := jwttest.SignToken("secret", "user-1", "p@example.com", time.Minute)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "p@example.com", claims.Email)
	assert.Equal(t, tokenID, claims.RevocationID())
	assert.InDelta(t, time.Minute.Seconds(), claims.RemainingTTL(time.Now()).Seconds(), 2)
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	verifier := NewJWTService(config.JWTConfig{Secret: "two"})

	token, _, err := jwttest.SignToken("one", "user-1", "", time.Minute)
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_FallsBackToSubject(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{Secret: "secret"})

	raw := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.RegisteredClaims{
		Subject:   "provider-uid",
		ID:        "jti-1",
		ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Minute)),
	})
	token, err := raw.SignedString([]byte("secret"))
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "provider-uid", claims.UserID)
	assert.Equal(t, "jti-1", claims.RevocationID())
}

func TestJWTService_RejectsMissingUser(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{Secret: "secret"})

	raw := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.RegisteredClaims{
		ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Minute)),
	})
	token, err := raw.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_RejectsExpired(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{Secret: "secret"})

	token, _, err := jwttest.SignToken("secret", "user-1", "", -time.Minute)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, gojwt.ErrTokenExpired)
}
