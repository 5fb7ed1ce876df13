package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"health-management/internal/domain/entity"
	domainRepo "health-management/internal/domain/repository"

	"github.com/redis/go-redis/v9"
)

// RedisDiagnosisJobKeyPrefix namespaces diagnosis jobs in Redis.
const RedisDiagnosisJobKeyPrefix = "diagnosis:job:"

type redisDiagnosisJobRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisDiagnosisJobRepository stores jobs as JSON values that expire
// ttl after their last write.
func NewRedisDiagnosisJobRepository(client *redis.Client, ttl time.Duration) domainRepo.DiagnosisJobRepository {
	return &redisDiagnosisJobRepository{client: client, ttl: ttl}
}

func (r *redisDiagnosisJobRepository) Save(ctx context.Context, job *entity.DiagnosisJob) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal diagnosis job %s: %w", job.ID, err)
	}
	return r.client.Set(ctx, RedisDiagnosisJobKeyPrefix+job.ID, payload, r.ttl).Err()
}

func (r *redisDiagnosisJobRepository) FindByID(ctx context.Context, id string) (*entity.DiagnosisJob, error) {
	payload, err := r.client.Get(ctx, RedisDiagnosisJobKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var job entity.DiagnosisJob
	if err := json.Unmarshal(payload, &job); err != nil {
		return nil, fmt.Errorf("unmarshal diagnosis job %s: %w", id, err)
	}
	return &job, nil
}
