package repository

import (
	"context"

	"health-management/internal/domain/entity"
)

// AppointmentRepository persists appointments. Lookups by an unknown or
// malformed id return (nil, nil).
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *entity.Appointment) error
	FindByID(ctx context.Context, id string) (*entity.Appointment, error)
	FindAll(ctx context.Context, filter entity.AppointmentFilter) ([]entity.Appointment, error)
	UpdateStatus(ctx context.Context, id string, status entity.AppointmentStatus) (*entity.Appointment, error)
	UpdateDetails(ctx context.Context, id string, details entity.AppointmentDetails) (*entity.Appointment, error)
	Delete(ctx context.Context, id string) (int64, error)
}
