package repository

import (
	"context"
	"testing"
	"time"

	"health-management/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func steppingClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		current = current.Add(time.Second)
		return current
	}
}

func newAppointment(patientID, date string) *entity.Appointment {
	d, _ := time.Parse("2006-01-02", date)
	return &entity.Appointment{
		PatientID:        patientID,
		DoctorName:       "Dr. Kavita Menon",
		DoctorEmail:      "kavita.menon@example.com",
		HospitalName:     "Sukhmani Hospital",
		HospitalLocation: "South Delhi",
		Department:       "Neurology",
		AppointmentDate:  d,
		TimeSlot:         "9:00 AM - 10:00 AM",
		Status:           entity.AppointmentStatusScheduled,
	}
}

func TestMemoryAppointmentRepository_FindAllOrdering(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryAppointmentRepositoryWithClock(steppingClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))

	older := newAppointment("p1", "2025-03-01")
	newerSameDay := newAppointment("p1", "2025-03-01")
	latest := newAppointment("p1", "2025-04-01")
	earliest := newAppointment("p1", "2025-02-01")
	other := newAppointment("p2", "2025-05-01")

	for _, a := range []*entity.Appointment{older, newerSameDay, latest, earliest, other} {
		require.NoError(t, repo.Create(ctx, a))
	}

	got, err := repo.FindAll(ctx, entity.AppointmentFilter{PatientID: "p1"})
	require.NoError(t, err)
	require.Len(t, got, 4)

	ids := []string{got[0].ID, got[1].ID, got[2].ID, got[3].ID}
	assert.Equal(t, []string{latest.ID, newerSameDay.ID, older.ID, earliest.ID}, ids)
}

func TestMemoryAppointmentRepository_FindAllFilters(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryAppointmentRepository()

	a := newAppointment("p1", "2025-03-01")
	b := newAppointment("p1", "2025-03-02")
	b.DoctorEmail = "d@example.com"
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	_, err := repo.UpdateStatus(ctx, a.ID, entity.AppointmentStatusCancelled)
	require.NoError(t, err)

	cancelled := entity.AppointmentStatusCancelled
	got, err := repo.FindAll(ctx, entity.AppointmentFilter{PatientID: "p1", Status: &cancelled})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, a.ID, got[0].ID)

	got, err = repo.FindAll(ctx, entity.AppointmentFilter{DoctorEmail: "d@example.com"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, b.ID, got[0].ID)

	got, err = repo.FindAll(ctx, entity.AppointmentFilter{PatientID: "unknown"})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestMemoryAppointmentRepository_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryAppointmentRepositoryWithClock(steppingClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))

	a := newAppointment("p1", "2025-03-01")
	require.NoError(t, repo.Create(ctx, a))

	symptoms := "headache"
	updated, err := repo.UpdateDetails(ctx, a.ID, entity.AppointmentDetails{Symptoms: &symptoms})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "headache", updated.Symptoms)
	assert.Equal(t, a.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(a.UpdatedAt))

	missing, err := repo.UpdateStatus(ctx, "nope", entity.AppointmentStatusCompleted)
	require.NoError(t, err)
	assert.Nil(t, missing)

	affected, err := repo.Delete(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	affected, err = repo.Delete(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
}

func TestHospitalRepository_EmbeddedCatalog(t *testing.T) {
	repo, err := NewHospitalRepository("")
	require.NoError(t, err)

	hospitals, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, hospitals)
	require.NotEmpty(t, hospitals[0].Departments)
	assert.NotEmpty(t, hospitals[0].Departments[0].Doctors[0].Email)
}

func TestHospitalRepository_MissingFile(t *testing.T) {
	_, err := NewHospitalRepository("/does/not/exist.json")
	assert.Error(t, err)
}
