package repository

import (
	"context"

	"health-management/internal/domain/entity"
)

type DiagnosisJobRepository interface {
	Save(ctx context.Context, job *entity.DiagnosisJob) error
	FindByID(ctx context.Context, id string) (*entity.DiagnosisJob, error)
}
