package repository

import (
	"context"
	"sync"
	"time"

	"health-management/internal/domain/entity"
	domainRepo "health-management/internal/domain/repository"

	"github.com/google/uuid"
)

// memoryAppointmentRepository keeps appointments in process memory. It backs
// DB_DRIVER=memory and the tests; data is lost on restart.
type memoryAppointmentRepository struct {
	mu           sync.RWMutex
	appointments map[string]entity.Appointment
	now          func() time.Time
}

func NewMemoryAppointmentRepository() domainRepo.AppointmentRepository {
	return NewMemoryAppointmentRepositoryWithClock(time.Now)
}

func NewMemoryAppointmentRepositoryWithClock(now func() time.Time) domainRepo.AppointmentRepository {
	return &memoryAppointmentRepository{
		appointments: make(map[string]entity.Appointment),
		now:          now,
	}
}

func (r *memoryAppointmentRepository) Create(ctx context.Context, appointment *entity.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now().UTC()
	appointment.ID = uuid.NewString()
	appointment.CreatedAt = now
	appointment.UpdatedAt = now
	r.appointments[appointment.ID] = *appointment
	return nil
}

func (r *memoryAppointmentRepository) FindByID(ctx context.Context, id string) (*entity.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	appointment, ok := r.appointments[id]
	if !ok {
		return nil, nil
	}
	return &appointment, nil
}

func (r *memoryAppointmentRepository) FindAll(ctx context.Context, filter entity.AppointmentFilter) ([]entity.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	appointments := make([]entity.Appointment, 0)
	for _, appointment := range r.appointments {
		if filter.Matches(&appointment) {
			appointments = append(appointments, appointment)
		}
	}
	entity.SortAppointments(appointments)
	return appointments, nil
}

func (r *memoryAppointmentRepository) UpdateStatus(ctx context.Context, id string, status entity.AppointmentStatus) (*entity.Appointment, error) {
	return r.update(id, func(a *entity.Appointment) {
		a.Status = status
	})
}

func (r *memoryAppointmentRepository) UpdateDetails(ctx context.Context, id string, details entity.AppointmentDetails) (*entity.Appointment, error) {
	return r.update(id, details.ApplyTo)
}

func (r *memoryAppointmentRepository) Delete(ctx context.Context, id string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.appointments[id]; !ok {
		return 0, nil
	}
	delete(r.appointments, id)
	return 1, nil
}

func (r *memoryAppointmentRepository) update(id string, mutate func(*entity.Appointment)) (*entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	appointment, ok := r.appointments[id]
	if !ok {
		return nil, nil
	}
	mutate(&appointment)
	appointment.UpdatedAt = r.now().UTC()
	r.appointments[id] = appointment
	return &appointment, nil
}
