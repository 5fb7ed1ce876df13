package video

import (
	"testing"
	"time"

	"health-management/config"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTwilioTokenIssuer_ScopesTokenToRoomAndIdentity(t *testing.T) {
	issuer := NewTwilioTokenIssuer(config.TwilioConfig{
		AccountSID: "ACxxxxxxxx",
		APIKey:     "SKxxxxxxxx",
		APISecret:  "secret",
		TokenTTL:   time.Hour,
	})

	token, err := issuer.IssueVideoToken("alice", "room-42")
	require.NoError(t, err)

	claims := gojwt.MapClaims{}
	parsed, err := gojwt.ParseWithClaims(token, claims, func(*gojwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	assert.Equal(t, "SKxxxxxxxx", claims["iss"])
	assert.Equal(t, "ACxxxxxxxx", claims["sub"])

	grants, ok := claims["grants"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "alice", grants["identity"])

	video, ok := grants["video"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "room-42", video["room"])

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp.Time, 5*time.Second)
}

func TestTwilioTokenIssuer_NotConfigured(t *testing.T) {
	issuer := NewTwilioTokenIssuer(config.TwilioConfig{})

	_, err := issuer.IssueVideoToken("alice", "room-42")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
