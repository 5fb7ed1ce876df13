package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"health-management/internal/delivery/dto"
	"health-management/internal/usecase"
	"health-management/pkg/response"

	"github.com/gorilla/mux"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
	}
}

func (h *AppointmentHandler) ListByPatient(w http.ResponseWriter, r *http.Request) {
	patientID := mux.Vars(r)["patientId"]

	appointments, err := h.appointmentUsecase.ListByPatient(r.Context(), patientID, r.URL.Query().Get("status"))
	if err != nil {
		writeUsecaseError(w, err, "Failed to fetch appointments")
		return
	}

	response.SuccessWithCount(w, http.StatusOK, "Appointments retrieved successfully", appointments, len(appointments))
}

func (h *AppointmentHandler) ListByDoctor(w http.ResponseWriter, r *http.Request) {
	doctorEmail := mux.Vars(r)["doctorEmail"]

	appointments, err := h.appointmentUsecase.ListByDoctor(r.Context(), doctorEmail, r.URL.Query().Get("status"))
	if err != nil {
		writeUsecaseError(w, err, "Failed to fetch doctor appointments")
		return
	}

	response.SuccessWithCount(w, http.StatusOK, "Appointments retrieved successfully", appointments, len(appointments))
}

func (h *AppointmentHandler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	appointment, err := h.appointmentUsecase.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, err, "Failed to fetch appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment retrieved successfully", appointment)
}

func (h *AppointmentHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	appointment, err := h.appointmentUsecase.Create(r.Context(), &req)
	if err != nil {
		writeUsecaseError(w, err, "Failed to create appointment")
		return
	}

	response.Success(w, http.StatusCreated, "Appointment created successfully", appointment)
}

func (h *AppointmentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateAppointmentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	appointment, err := h.appointmentUsecase.UpdateStatus(r.Context(), mux.Vars(r)["id"], req.Status)
	if err != nil {
		h.writeError(w, err, "Failed to update appointment status")
		return
	}

	response.Success(w, http.StatusOK, "Appointment status updated successfully", appointment)
}

func (h *AppointmentHandler) UpdateDetails(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateAppointmentDetailsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	appointment, err := h.appointmentUsecase.UpdateDetails(r.Context(), mux.Vars(r)["id"], &req)
	if err != nil {
		h.writeError(w, err, "Failed to update appointment details")
		return
	}

	response.Success(w, http.StatusOK, "Appointment details updated successfully", appointment)
}

func (h *AppointmentHandler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	if err := h.appointmentUsecase.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.writeError(w, err, "Failed to delete appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment deleted successfully", nil)
}

func (h *AppointmentHandler) writeError(w http.ResponseWriter, err error, failureMessage string) {
	if errors.Is(err, usecase.ErrAppointmentNotFound) {
		response.NotFound(w, "Appointment not found")
		return
	}
	writeUsecaseError(w, err, failureMessage)
}
