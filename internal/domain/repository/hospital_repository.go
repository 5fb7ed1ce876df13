package repository

import (
	"context"

	"health-management/internal/domain/entity"
)

type HospitalRepository interface {
	FindAll(ctx context.Context) ([]entity.Hospital, error)
}
