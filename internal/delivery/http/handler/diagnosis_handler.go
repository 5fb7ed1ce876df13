package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"health-management/internal/delivery/dto"
	"health-management/internal/service"
	"health-management/internal/usecase"
	"health-management/pkg/response"
	"health-management/pkg/validator"

	"github.com/gorilla/mux"
)

type DiagnosisHandler struct {
	diagnosisUsecase usecase.DiagnosisUsecase
	validator        *validator.CustomValidator
}

func NewDiagnosisHandler(diagnosisUsecase usecase.DiagnosisUsecase, validator *validator.CustomValidator) *DiagnosisHandler {
	return &DiagnosisHandler{
		diagnosisUsecase: diagnosisUsecase,
		validator:        validator,
	}
}

func (h *DiagnosisHandler) SubmitDiagnosis(w http.ResponseWriter, r *http.Request) {
	var req dto.DiagnosisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	job, err := h.diagnosisUsecase.SubmitDiagnosis(r.Context(), &req)
	if err != nil {
		h.writeSubmitError(w, err)
		return
	}

	response.Success(w, http.StatusAccepted, "Diagnosis request accepted", job)
}

func (h *DiagnosisHandler) SubmitRecommendation(w http.ResponseWriter, r *http.Request) {
	var req dto.RecommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	job, err := h.diagnosisUsecase.SubmitRecommendation(r.Context(), &req)
	if err != nil {
		h.writeSubmitError(w, err)
		return
	}

	response.Success(w, http.StatusAccepted, "Recommendation request accepted", job)
}

func (h *DiagnosisHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	job, err := h.diagnosisUsecase.GetJob(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, usecase.ErrDiagnosisJobNotFound) {
			response.NotFound(w, "Diagnosis job not found")
			return
		}
		response.InternalServerError(w, "Failed to fetch diagnosis job", err)
		return
	}

	response.Success(w, http.StatusOK, "Diagnosis job retrieved successfully", job)
}

func (h *DiagnosisHandler) writeSubmitError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrDiagnosisQueueFull), errors.Is(err, service.ErrWorkerStopped):
		response.Error(w, http.StatusServiceUnavailable, "Diagnosis service is busy, please try again later", err.Error())
	default:
		writeUsecaseError(w, err, "Failed to submit diagnosis request")
	}
}
