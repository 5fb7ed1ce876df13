package converter

import (
	"health-management/internal/delivery/dto"
	"health-management/internal/domain/entity"
)

// AppointmentDateLayout is how appointment dates are rendered on the wire.
const AppointmentDateLayout = "2006-01-02"

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	return &dto.AppointmentResponse{
		ID:               appointment.ID,
		PatientID:        appointment.PatientID,
		DoctorName:       appointment.DoctorName,
		DoctorEmail:      appointment.DoctorEmail,
		HospitalName:     appointment.HospitalName,
		HospitalLocation: appointment.HospitalLocation,
		Department:       appointment.Department,
		AppointmentDate:  appointment.AppointmentDate.UTC().Format(AppointmentDateLayout),
		TimeSlot:         appointment.TimeSlot,
		Status:           string(appointment.Status),
		Symptoms:         appointment.Symptoms,
		Medications:      appointment.Medications,
		Allergies:        appointment.Allergies,
		MedicalHistory:   appointment.MedicalHistory,
		MedicineHistory:  appointment.MedicineHistory,
		Notes:            appointment.Notes,
		CreatedAt:        appointment.CreatedAt,
		UpdatedAt:        appointment.UpdatedAt,
	}
}

// AppointmentsToResponses converts a slice of Appointment entities to slice of AppointmentResponse DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i])
	}
	return responses
}

// DetailsRequestToEntity maps the pre-appointment form onto the entity patch.
func DetailsRequestToEntity(req *dto.UpdateAppointmentDetailsRequest) entity.AppointmentDetails {
	return entity.AppointmentDetails{
		Symptoms:        req.Symptoms,
		Medications:     req.Medications,
		Allergies:       req.Allergies,
		MedicalHistory:  req.MedicalHistory,
		MedicineHistory: req.MedicineHistory,
		Notes:           req.Notes,
	}
}

// DiagnosisJobToResponse converts a DiagnosisJob entity to DiagnosisJobResponse DTO
func DiagnosisJobToResponse(job *entity.DiagnosisJob) *dto.DiagnosisJobResponse {
	if job == nil {
		return nil
	}

	return &dto.DiagnosisJobResponse{
		ID:        job.ID,
		Kind:      string(job.Kind),
		Status:    string(job.Status),
		Attempts:  job.Attempts,
		Result:    job.Result,
		Error:     job.Error,
		CreatedAt: job.CreatedAt,
		UpdatedAt: job.UpdatedAt,
	}
}
