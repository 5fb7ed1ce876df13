package entity

import (
	"sort"
	"time"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// StatusFilterAll matches every status in list queries.
const StatusFilterAll = "all"

// AppointmentStatuses lists every accepted status value.
var AppointmentStatuses = []AppointmentStatus{
	AppointmentStatusScheduled,
	AppointmentStatusCompleted,
	AppointmentStatusCancelled,
}

// IsValid reports whether s is one of the accepted status values.
func (s AppointmentStatus) IsValid() bool {
	for _, status := range AppointmentStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Appointment represents a booked consultation between a patient and a doctor.
// PatientID is the opaque identifier issued by the auth provider.
type Appointment struct {
	ID               string            `gorm:"type:uuid;primaryKey" json:"id"`
	PatientID        string            `gorm:"type:varchar(128);not null;index:idx_appointments_patient_date,priority:1" json:"patient_id"`
	DoctorName       string            `gorm:"type:varchar(255);not null" json:"doctor_name"`
	DoctorEmail      string            `gorm:"type:varchar(255);not null;index" json:"doctor_email"`
	HospitalName     string            `gorm:"type:varchar(255);not null" json:"hospital_name"`
	HospitalLocation string            `gorm:"type:varchar(255);not null" json:"hospital_location"`
	Department       string            `gorm:"type:varchar(255);not null" json:"department"`
	AppointmentDate  time.Time         `gorm:"type:date;not null;index:idx_appointments_patient_date,priority:2,sort:desc" json:"appointment_date"`
	TimeSlot         string            `gorm:"type:varchar(100);not null" json:"time_slot"`
	Status           AppointmentStatus `gorm:"type:varchar(20);not null;default:'scheduled';index;check:chk_appointments_status,status IN ('scheduled','completed','cancelled')" json:"status"`
	Symptoms         string            `gorm:"type:text;not null;default:''" json:"symptoms"`
	Medications      string            `gorm:"type:text;not null;default:''" json:"medications"`
	Allergies        string            `gorm:"type:text;not null;default:''" json:"allergies"`
	MedicalHistory   string            `gorm:"type:text;not null;default:''" json:"medical_history"`
	MedicineHistory  string            `gorm:"type:text;not null;default:''" json:"medicine_history"`
	Notes            string            `gorm:"type:text;not null;default:''" json:"notes"`
	CreatedAt        time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsScheduled reports whether the consultation is still upcoming.
func (a *Appointment) IsScheduled() bool {
	return a.Status == AppointmentStatusScheduled
}

// AppointmentDetails holds the clinical free-text fields a patient submits
// before the consultation. Nil fields are left untouched on update.
type AppointmentDetails struct {
	Symptoms        *string
	Medications     *string
	Allergies       *string
	MedicalHistory  *string
	MedicineHistory *string
	Notes           *string
}

// IsEmpty reports whether no field is set.
func (d AppointmentDetails) IsEmpty() bool {
	return d.Symptoms == nil && d.Medications == nil && d.Allergies == nil &&
		d.MedicalHistory == nil && d.MedicineHistory == nil && d.Notes == nil
}

// ApplyTo copies the set fields onto the appointment.
func (d AppointmentDetails) ApplyTo(a *Appointment) {
	if d.Symptoms != nil {
		a.Symptoms = *d.Symptoms
	}
	if d.Medications != nil {
		a.Medications = *d.Medications
	}
	if d.Allergies != nil {
		a.Allergies = *d.Allergies
	}
	if d.MedicalHistory != nil {
		a.MedicalHistory = *d.MedicalHistory
	}
	if d.MedicineHistory != nil {
		a.MedicineHistory = *d.MedicineHistory
	}
	if d.Notes != nil {
		a.Notes = *d.Notes
	}
}

// Columns returns the set fields keyed by their column name.
func (d AppointmentDetails) Columns() map[string]interface{} {
	columns := make(map[string]interface{})
	if d.Symptoms != nil {
		columns["symptoms"] = *d.Symptoms
	}
	if d.Medications != nil {
		columns["medications"] = *d.Medications
	}
	if d.Allergies != nil {
		columns["allergies"] = *d.Allergies
	}
	if d.MedicalHistory != nil {
		columns["medical_history"] = *d.MedicalHistory
	}
	if d.MedicineHistory != nil {
		columns["medicine_history"] = *d.MedicineHistory
	}
	if d.Notes != nil {
		columns["notes"] = *d.Notes
	}
	return columns
}

// ChangedFields returns the sorted column names of the set fields.
func (d AppointmentDetails) ChangedFields() []string {
	columns := d.Columns()
	names := make([]string, 0, len(columns))
	for name := range columns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
