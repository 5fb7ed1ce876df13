package video

import (
	"errors"
	"fmt"
	"time"

	"health-management/config"

	"github.com/twilio/twilio-go/client/jwt"
)

var ErrNotConfigured = errors.New("twilio credentials are not configured")

// TwilioTokenIssuer signs Twilio Video access tokens with an API key.
type TwilioTokenIssuer struct {
	accountSID string
	apiKey     string
	apiSecret  string
	ttl        time.Duration
}

func NewTwilioTokenIssuer(cfg config.TwilioConfig) *TwilioTokenIssuer {
	return &TwilioTokenIssuer{
		accountSID: cfg.AccountSID,
		apiKey:     cfg.APIKey,
		apiSecret:  cfg.APISecret,
		ttl:        cfg.TokenTTL,
	}
}

// IssueVideoToken returns a token that lets identity join room and nothing else.
func (i *TwilioTokenIssuer) IssueVideoToken(identity, room string) (string, error) {
	if i.accountSID == "" || i.apiKey == "" || i.apiSecret == "" {
		return "", ErrNotConfigured
	}

	params := jwt.AccessTokenParams{
		AccountSid:    i.accountSID,
		SigningKeySid: i.apiKey,
		Secret:        i.apiSecret,
		Identity:      identity,
	}
	if i.ttl > 0 {
		params.Ttl = i.ttl.Seconds()
	}

	token := jwt.CreateAccessToken(params)
	token.AddGrant(&jwt.VideoGrant{Room: room})

	signed, err := token.ToJwt()
	if err != nil {
		return "", fmt.Errorf("sign twilio access token: %w", err)
	}
	return signed, nil
}
