package dto

import (
	"encoding/json"
	"time"
)

// Request DTOs

type CreateAppointmentRequest struct {
	PatientID        string `json:"patient_id" validate:"required"`
	DoctorName       string `json:"doctor_name" validate:"required"`
	DoctorEmail      string `json:"doctor_email" validate:"required"`
	HospitalName     string `json:"hospital_name" validate:"required"`
	HospitalLocation string `json:"hospital_location" validate:"required"`
	Department       string `json:"department" validate:"required"`
	AppointmentDate  string `json:"appointment_date" validate:"required"`
	TimeSlot         string `json:"time_slot" validate:"required"`
	Symptoms         string `json:"symptoms"`
	Medications      string `json:"medications"`
	Allergies        string `json:"allergies"`
	MedicalHistory   string `json:"medical_history"`
	MedicineHistory  string `json:"medicine_history"`
	Notes            string `json:"notes"`
}

// UnmarshalJSON also accepts the camelCase medicalHistory and medicineHistory
// keys used by existing web clients.
func (r *CreateAppointmentRequest) UnmarshalJSON(data []byte) error {
	type plain CreateAppointmentRequest
	aux := struct {
		*plain
		MedicalHistoryCamel  *string `json:"medicalHistory"`
		MedicineHistoryCamel *string `json:"medicineHistory"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if r.MedicalHistory == "" && aux.MedicalHistoryCamel != nil {
		r.MedicalHistory = *aux.MedicalHistoryCamel
	}
	if r.MedicineHistory == "" && aux.MedicineHistoryCamel != nil {
		r.MedicineHistory = *aux.MedicineHistoryCamel
	}
	return nil
}

type UpdateAppointmentStatusRequest struct {
	Status string `json:"status"`
}

// UpdateAppointmentDetailsRequest carries the pre-appointment form. Omitted
// fields are left unchanged.
type UpdateAppointmentDetailsRequest struct {
	Symptoms        *string `json:"symptoms,omitempty"`
	Medications     *string `json:"medications,omitempty"`
	Allergies       *string `json:"allergies,omitempty"`
	MedicalHistory  *string `json:"medical_history,omitempty"`
	MedicineHistory *string `json:"medicine_history,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// UnmarshalJSON also accepts the camelCase medicalHistory and medicineHistory
// keys. The snake_case key wins when both are sent.
func (r *UpdateAppointmentDetailsRequest) UnmarshalJSON(data []byte) error {
	type plain UpdateAppointmentDetailsRequest
	aux := struct {
		*plain
		MedicalHistoryCamel  *string `json:"medicalHistory"`
		MedicineHistoryCamel *string `json:"medicineHistory"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if r.MedicalHistory == nil {
		r.MedicalHistory = aux.MedicalHistoryCamel
	}
	if r.MedicineHistory == nil {
		r.MedicineHistory = aux.MedicineHistoryCamel
	}
	return nil
}

// Response DTOs

type AppointmentResponse struct {
	ID               string    `json:"id"`
	PatientID        string    `json:"patient_id"`
	DoctorName       string    `json:"doctor_name"`
	DoctorEmail      string    `json:"doctor_email"`
	HospitalName     string    `json:"hospital_name"`
	HospitalLocation string    `json:"hospital_location"`
	Department       string    `json:"department"`
	AppointmentDate  string    `json:"appointment_date"`
	TimeSlot         string    `json:"time_slot"`
	Status           string    `json:"status"`
	Symptoms         string    `json:"symptoms"`
	Medications      string    `json:"medications"`
	Allergies        string    `json:"allergies"`
	MedicalHistory   string    `json:"medical_history"`
	MedicineHistory  string    `json:"medicine_history"`
	Notes            string    `json:"notes"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
