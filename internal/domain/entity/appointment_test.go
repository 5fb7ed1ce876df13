package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppointment_IsScheduled(t *testing.T) {
	assert.True(t, (&Appointment{Status: AppointmentStatusScheduled}).IsScheduled())
	assert.False(t, (&Appointment{Status: AppointmentStatusCompleted}).IsScheduled())
	assert.False(t, (&Appointment{Status: AppointmentStatusCancelled}).IsScheduled())
}

func TestAppointmentDetails_ChangedFields(t *testing.T) {
	notes, history := "n", "h"
	assert.Equal(t, []string{"medical_history", "notes"}, AppointmentDetails{Notes: &notes, MedicalHistory: &history}.ChangedFields())
	assert.Empty(t, AppointmentDetails{}.ChangedFields())
}
