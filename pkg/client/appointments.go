package client

import (
	"context"
	"net/http"
	"net/url"
)

func statusQuery(status string) url.Values {
	if status == "" {
		status = "all"
	}
	return url.Values{"status": []string{status}}
}

// ListByPatient returns a patient's appointments. An empty status means all.
func (c *Client) ListByPatient(ctx context.Context, patientID, status string) ([]Appointment, error) {
	appointments := []Appointment{}
	_, err := c.do(ctx, http.MethodGet, "/appointments/user/"+url.PathEscape(patientID), statusQuery(status), nil, &appointments, "Failed to fetch appointments")
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (c *Client) ListByDoctor(ctx context.Context, doctorEmail, status string) ([]Appointment, error) {
	appointments := []Appointment{}
	_, err := c.do(ctx, http.MethodGet, "/appointments/doctor/"+url.PathEscape(doctorEmail), statusQuery(status), nil, &appointments, "Failed to fetch doctor appointments")
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (c *Client) GetAppointment(ctx context.Context, id string) (*Appointment, error) {
	var appointment Appointment
	if _, err := c.do(ctx, http.MethodGet, "/appointments/"+url.PathEscape(id), nil, nil, &appointment, "Failed to fetch appointment"); err != nil {
		return nil, err
	}
	return &appointment, nil
}

func (c *Client) CreateAppointment(ctx context.Context, req CreateAppointmentRequest) (*Appointment, error) {
	var appointment Appointment
	if _, err := c.do(ctx, http.MethodPost, "/appointments", nil, req, &appointment, "Failed to create appointment"); err != nil {
		return nil, err
	}
	return &appointment, nil
}

func (c *Client) UpdateAppointmentStatus(ctx context.Context, id, status string) (*Appointment, error) {
	var appointment Appointment
	body := updateStatusRequest{Status: status}
	if _, err := c.do(ctx, http.MethodPatch, "/appointments/"+url.PathEscape(id)+"/status", nil, body, &appointment, "Failed to update appointment status"); err != nil {
		return nil, err
	}
	return &appointment, nil
}

func (c *Client) UpdateAppointmentDetails(ctx context.Context, id string, details AppointmentDetails) (*Appointment, error) {
	var appointment Appointment
	if _, err := c.do(ctx, http.MethodPatch, "/appointments/"+url.PathEscape(id)+"/details", nil, details, &appointment, "Failed to update appointment details"); err != nil {
		return nil, err
	}
	return &appointment, nil
}

func (c *Client) DeleteAppointment(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/appointments/"+url.PathEscape(id), nil, nil, nil, "Failed to delete appointment")
	return err
}
