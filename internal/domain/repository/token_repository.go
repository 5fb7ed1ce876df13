package repository

import (
	"context"
	"time"
)

// TokenRepository tracks bearer tokens revoked before their expiry.
type TokenRepository interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
