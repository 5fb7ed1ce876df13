package service

import (
	"context"
	"fmt"
	"strings"

	"health-management/internal/domain/entity"
	"health-management/internal/infrastructure/mail"
)

// NotificationService tells doctors about a patient's pre-appointment details.
type NotificationService interface {
	NotifyAppointmentDetails(ctx context.Context, appointment *entity.Appointment) error
}

type notificationService struct {
	mailer mail.Mailer
}

func NewNotificationService(mailer mail.Mailer) NotificationService {
	return &notificationService{mailer: mailer}
}

func (s *notificationService) NotifyAppointmentDetails(ctx context.Context, appointment *entity.Appointment) error {
	if appointment.DoctorEmail == "" {
		return nil
	}

	return s.mailer.Send(ctx, mail.Message{
		To:      appointment.DoctorEmail,
		Subject: fmt.Sprintf("Pre-appointment details for %s, %s", appointment.AppointmentDate.UTC().Format("2006-01-02"), appointment.TimeSlot),
		Body:    preAppointmentBody(appointment),
	})
}

func preAppointmentBody(a *entity.Appointment) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", a.DoctorName)
	fmt.Fprintf(&b, "A patient booked with you at %s (%s), %s department, has shared the following details.\n\n",
		a.HospitalName, a.HospitalLocation, a.Department)

	sections := []struct {
		label string
		value string
	}{
		{"Symptoms", a.Symptoms},
		{"Current medications", a.Medications},
		{"Allergies", a.Allergies},
		{"Medical history", a.MedicalHistory},
		{"Medicine history", a.MedicineHistory},
		{"Notes", a.Notes},
	}
	for _, s := range sections {
		value := strings.TrimSpace(s.value)
		if value == "" {
			value = "not provided"
		}
		fmt.Fprintf(&b, "%s: %s\n", s.label, value)
	}
	return b.String()
}
