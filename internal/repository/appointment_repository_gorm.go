package repository

import (
	"context"
	"errors"
	"time"

	"health-management/internal/domain/entity"
	domainRepo "health-management/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// pgCheckViolation is the SQLSTATE raised when a CHECK constraint fails.
const pgCheckViolation = "23514"

type gormAppointmentRepository struct {
	db *gorm.DB
}

func NewGormAppointmentRepository(db *gorm.DB) domainRepo.AppointmentRepository {
	return &gormAppointmentRepository{db: db}
}

func (r *gormAppointmentRepository) Create(ctx context.Context, appointment *entity.Appointment) error {
	appointment.ID = uuid.NewString()
	return translateGormError(r.db.WithContext(ctx).Create(appointment).Error)
}

func (r *gormAppointmentRepository) FindByID(ctx context.Context, id string) (*entity.Appointment, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}

	var appointment entity.Appointment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *gormAppointmentRepository) FindAll(ctx context.Context, filter entity.AppointmentFilter) ([]entity.Appointment, error) {
	query := r.db.WithContext(ctx).Model(&entity.Appointment{})
	if filter.PatientID != "" {
		query = query.Where("patient_id = ?", filter.PatientID)
	}
	if filter.DoctorEmail != "" {
		query = query.Where("doctor_email = ?", filter.DoctorEmail)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	appointments := make([]entity.Appointment, 0)
	err := query.
		Order("appointment_date DESC, created_at DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *gormAppointmentRepository) UpdateStatus(ctx context.Context, id string, status entity.AppointmentStatus) (*entity.Appointment, error) {
	return r.updateColumns(ctx, id, map[string]interface{}{"status": status})
}

func (r *gormAppointmentRepository) UpdateDetails(ctx context.Context, id string, details entity.AppointmentDetails) (*entity.Appointment, error) {
	return r.updateColumns(ctx, id, details.Columns())
}

// updateColumns applies the columns and reads the row back in one statement.
func (r *gormAppointmentRepository) updateColumns(ctx context.Context, id string, columns map[string]interface{}) (*entity.Appointment, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	columns["updated_at"] = time.Now().UTC()

	var appointments []entity.Appointment
	result := r.db.WithContext(ctx).
		Model(&appointments).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(columns)
	if result.Error != nil {
		return nil, translateGormError(result.Error)
	}
	if result.RowsAffected == 0 || len(appointments) == 0 {
		return nil, nil
	}
	return &appointments[0], nil
}

func (r *gormAppointmentRepository) Delete(ctx context.Context, id string) (int64, error) {
	if _, err := uuid.Parse(id); err != nil {
		return 0, nil
	}
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Appointment{})
	return result.RowsAffected, result.Error
}

func translateGormError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgCheckViolation {
		return domainRepo.ErrConstraintViolation
	}
	return err
}
