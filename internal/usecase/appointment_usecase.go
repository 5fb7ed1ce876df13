package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"health-management/internal/converter"
	"health-management/internal/delivery/dto"
	"health-management/internal/domain/entity"
	"health-management/internal/domain/repository"
	"health-management/internal/service"
	"health-management/pkg/validator"

	"github.com/sirupsen/logrus"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
)

const (
	invalidStatusMessage       = "Invalid status. Must be scheduled, completed, or cancelled"
	invalidStatusFilterMessage = "Invalid status filter. Must be all, scheduled, completed, or cancelled"
	appointmentEntity          = "appointment"
)

// ValidationError rejects a request before it reaches the store. Fields maps
// the offending JSON field to a message.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	parts := make([]string, 0, len(e.Fields))
	for _, msg := range e.Fields {
		parts = append(parts, msg)
	}
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(parts, "; "))
}

func newValidationError(message string, fields map[string]string) *ValidationError {
	return &ValidationError{Message: message, Fields: fields}
}

type AppointmentUsecase interface {
	ListByPatient(ctx context.Context, patientID string, status string) ([]dto.AppointmentResponse, error)
	ListByDoctor(ctx context.Context, doctorEmail string, status string) ([]dto.AppointmentResponse, error)
	GetByID(ctx context.Context, id string) (*dto.AppointmentResponse, error)
	Create(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	UpdateStatus(ctx context.Context, id string, status string) (*dto.AppointmentResponse, error)
	UpdateDetails(ctx context.Context, id string, req *dto.UpdateAppointmentDetailsRequest) (*dto.AppointmentResponse, error)
	Delete(ctx context.Context, id string) error
}

type appointmentUsecase struct {
	log                 *logrus.Logger
	validator           *validator.CustomValidator
	appointmentRepo     repository.AppointmentRepository
	auditService        service.AuditService
	notificationService service.NotificationService
}

func NewAppointmentUsecase(
	log *logrus.Logger,
	validator *validator.CustomValidator,
	appointmentRepo repository.AppointmentRepository,
	auditService service.AuditService,
	notificationService service.NotificationService,
) AppointmentUsecase {
	return &appointmentUsecase{
		log:                 log,
		validator:           validator,
		appointmentRepo:     appointmentRepo,
		auditService:        auditService,
		notificationService: notificationService,
	}
}

// ListByPatient returns a patient's appointments, newest appointment date first
func (u *appointmentUsecase) ListByPatient(ctx context.Context, patientID string, status string) ([]dto.AppointmentResponse, error) {
	if strings.TrimSpace(patientID) == "" {
		return nil, newValidationError("Validation failed", map[string]string{"patient_id": "patient_id is required"})
	}

	filter, err := parseStatusFilter(status)
	if err != nil {
		return nil, err
	}
	filter.PatientID = patientID

	return u.list(ctx, filter)
}

// ListByDoctor returns the appointments booked with a doctor
func (u *appointmentUsecase) ListByDoctor(ctx context.Context, doctorEmail string, status string) ([]dto.AppointmentResponse, error) {
	if strings.TrimSpace(doctorEmail) == "" {
		return nil, newValidationError("Validation failed", map[string]string{"doctor_email": "doctor_email is required"})
	}

	filter, err := parseStatusFilter(status)
	if err != nil {
		return nil, err
	}
	filter.DoctorEmail = doctorEmail

	return u.list(ctx, filter)
}

func (u *appointmentUsecase) list(ctx context.Context, filter entity.AppointmentFilter) ([]dto.AppointmentResponse, error) {
	appointments, err := u.appointmentRepo.FindAll(ctx, filter)
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}

	return converter.AppointmentsToResponses(appointments), nil
}

func (u *appointmentUsecase) GetByID(ctx context.Context, id string) (*dto.AppointmentResponse, error) {
	appointment, err := u.findByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return converter.AppointmentToResponse(appointment), nil
}

// Create books a new appointment. The status is always scheduled regardless
// of what the caller sends.
func (u *appointmentUsecase) Create(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	trimRequired(req)

	if err := u.validator.Validate(req); err != nil {
		return nil, newValidationError("Missing required fields", u.validator.FormatValidationErrors(err))
	}

	appointmentDate, err := ParseAppointmentDate(req.AppointmentDate)
	if err != nil {
		return nil, newValidationError("Validation failed", map[string]string{
			"appointment_date": "appointment_date must be a date in YYYY-MM-DD or RFC 3339 format",
		})
	}

	appointment := &entity.Appointment{
		PatientID:        req.PatientID,
		DoctorName:       req.DoctorName,
		DoctorEmail:      req.DoctorEmail,
		HospitalName:     req.HospitalName,
		HospitalLocation: req.HospitalLocation,
		Department:       req.Department,
		AppointmentDate:  appointmentDate,
		TimeSlot:         req.TimeSlot,
		Status:           entity.AppointmentStatusScheduled,
		Symptoms:         req.Symptoms,
		Medications:      req.Medications,
		Allergies:        req.Allergies,
		MedicalHistory:   req.MedicalHistory,
		MedicineHistory:  req.MedicineHistory,
		Notes:            req.Notes,
	}

	if err := u.appointmentRepo.Create(ctx, appointment); err != nil {
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, translateStoreError(err)
	}

	u.auditService.LogCreate(ctx, service.AuditActionCreate, appointmentEntity, appointment.ID, auditSnapshot(appointment))
	u.log.Infof("Appointment created: id=%s, patient=%s, doctor=%s", appointment.ID, appointment.PatientID, appointment.DoctorEmail)

	return converter.AppointmentToResponse(appointment), nil
}

// UpdateStatus sets any of the three statuses. Transitions are not guarded:
// a completed or cancelled appointment may be scheduled again.
func (u *appointmentUsecase) UpdateStatus(ctx context.Context, id string, status string) (*dto.AppointmentResponse, error) {
	newStatus := entity.AppointmentStatus(status)
	if !newStatus.IsValid() {
		return nil, newValidationError(invalidStatusMessage, map[string]string{
			"status": "status must be one of: scheduled, completed, cancelled",
		})
	}

	existing, err := u.findByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := u.appointmentRepo.UpdateStatus(ctx, id, newStatus)
	if err != nil {
		u.log.Warnf("Failed to update status of appointment %s: %+v", id, err)
		return nil, translateStoreError(err)
	}
	if updated == nil {
		return nil, ErrAppointmentNotFound
	}

	u.auditService.LogUpdate(ctx, service.AuditActionUpdateStatus, appointmentEntity, id,
		map[string]interface{}{"status": existing.Status},
		map[string]interface{}{"status": updated.Status},
	)
	u.log.Infof("Appointment status updated: id=%s, %s -> %s", id, existing.Status, updated.Status)

	return converter.AppointmentToResponse(updated), nil
}

// UpdateDetails applies the supplied clinical fields and leaves the rest
// untouched, then forwards the details to the doctor while the appointment is
// still scheduled.
func (u *appointmentUsecase) UpdateDetails(ctx context.Context, id string, req *dto.UpdateAppointmentDetailsRequest) (*dto.AppointmentResponse, error) {
	if _, err := u.findByID(ctx, id); err != nil {
		return nil, err
	}

	details := converter.DetailsRequestToEntity(req)
	updated, err := u.appointmentRepo.UpdateDetails(ctx, id, details)
	if err != nil {
		u.log.Warnf("Failed to update details of appointment %s: %+v", id, err)
		return nil, translateStoreError(err)
	}
	if updated == nil {
		return nil, ErrAppointmentNotFound
	}

	// Clinical free text stays out of the audit trail, only column names are kept.
	u.auditService.LogUpdate(ctx, service.AuditActionUpdateDetails, appointmentEntity, id,
		nil,
		map[string]interface{}{"changed_fields": details.ChangedFields()},
	)

	switch {
	case details.IsEmpty():
	case !updated.IsScheduled():
		u.log.Infof("Skipping doctor notification for appointment %s with status %s", id, updated.Status)
	default:
		if err := u.notificationService.NotifyAppointmentDetails(ctx, updated); err != nil {
			u.log.Warnf("Failed to notify doctor about appointment %s: %+v", id, err)
		}
	}

	return converter.AppointmentToResponse(updated), nil
}

// Delete removes the appointment permanently. Deleting it again reports
// ErrAppointmentNotFound.
func (u *appointmentUsecase) Delete(ctx context.Context, id string) error {
	existing, err := u.findByID(ctx, id)
	if err != nil {
		return err
	}

	affected, err := u.appointmentRepo.Delete(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to delete appointment %s: %+v", id, err)
		return err
	}
	if affected == 0 {
		return ErrAppointmentNotFound
	}

	u.auditService.LogDelete(ctx, service.AuditActionDelete, appointmentEntity, id, auditSnapshot(existing))
	u.log.Infof("Appointment deleted: id=%s", id)

	return nil
}

func (u *appointmentUsecase) findByID(ctx context.Context, id string) (*entity.Appointment, error) {
	appointment, err := u.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	return appointment, nil
}

// ParseAppointmentDate accepts YYYY-MM-DD or an RFC 3339 timestamp and
// returns the calendar date at UTC midnight. RFC 3339 input keeps the day it
// names in its own offset.
func ParseAppointmentDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(converter.AppointmentDateLayout, value); err == nil {
		return t, nil
	}

	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse appointment date %q: %w", value, err)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

func parseStatusFilter(status string) (entity.AppointmentFilter, error) {
	status = strings.TrimSpace(status)
	if status == "" || status == entity.StatusFilterAll {
		return entity.AppointmentFilter{}, nil
	}

	s := entity.AppointmentStatus(status)
	if !s.IsValid() {
		return entity.AppointmentFilter{}, newValidationError(invalidStatusFilterMessage, map[string]string{
			"status": "status must be one of: all, scheduled, completed, cancelled",
		})
	}
	return entity.AppointmentFilter{Status: &s}, nil
}

func trimRequired(req *dto.CreateAppointmentRequest) {
	for _, field := range []*string{
		&req.PatientID, &req.DoctorName, &req.DoctorEmail, &req.HospitalName,
		&req.HospitalLocation, &req.Department, &req.AppointmentDate, &req.TimeSlot,
	} {
		*field = strings.TrimSpace(*field)
	}
}

// auditSnapshot is the part of an appointment recorded in audit entries.
func auditSnapshot(a *entity.Appointment) map[string]interface{} {
	return map[string]interface{}{
		"patient_id":       a.PatientID,
		"doctor_email":     a.DoctorEmail,
		"appointment_date": a.AppointmentDate.UTC().Format(converter.AppointmentDateLayout),
		"time_slot":        a.TimeSlot,
		"status":           a.Status,
	}
}

func translateStoreError(err error) error {
	if errors.Is(err, repository.ErrConstraintViolation) {
		return newValidationError("Validation failed", map[string]string{"status": err.Error()})
	}
	return err
}
