package repository

import (
	"context"
	"time"

	domainRepo "health-management/internal/domain/repository"

	"github.com/redis/go-redis/v9"
)

// RedisRevokedTokenKeyPrefix namespaces revoked token ids in Redis.
const RedisRevokedTokenKeyPrefix = "revoked_token:"

type redisTokenRepository struct {
	client *redis.Client
}

func NewRedisTokenRepository(client *redis.Client) domainRepo.TokenRepository {
	return &redisTokenRepository{client: client}
}

func (r *redisTokenRepository) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		// Already expired, nothing left to revoke.
		return nil
	}
	return r.client.Set(ctx, RedisRevokedTokenKeyPrefix+tokenID, "1", ttl).Err()
}

func (r *redisTokenRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	exists, err := r.client.Exists(ctx, RedisRevokedTokenKeyPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}
