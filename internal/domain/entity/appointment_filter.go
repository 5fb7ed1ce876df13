package entity

import "sort"

// AppointmentFilter narrows list queries. Exactly one of PatientID or
// DoctorEmail is expected to be set. A nil Status matches every status.
type AppointmentFilter struct {
	PatientID   string
	DoctorEmail string
	Status      *AppointmentStatus
}

// Matches reports whether the appointment satisfies the filter.
func (f AppointmentFilter) Matches(a *Appointment) bool {
	if f.PatientID != "" && a.PatientID != f.PatientID {
		return false
	}
	if f.DoctorEmail != "" && a.DoctorEmail != f.DoctorEmail {
		return false
	}
	if f.Status != nil && a.Status != *f.Status {
		return false
	}
	return true
}

// SortAppointments orders appointments newest appointment date first,
// breaking ties by newest creation time.
func SortAppointments(appointments []Appointment) {
	sort.SliceStable(appointments, func(i, j int) bool {
		a, b := appointments[i], appointments[j]
		if !a.AppointmentDate.Equal(b.AppointmentDate) {
			return a.AppointmentDate.After(b.AppointmentDate)
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
}
