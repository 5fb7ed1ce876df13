package handler

import (
	"net/http"
	"strconv"

	"health-management/internal/delivery/dto"
	"health-management/internal/domain/entity"
	"health-management/internal/usecase"
	"health-management/pkg/response"
	"health-management/pkg/validator"
)

type HospitalHandler struct {
	hospitalUsecase usecase.HospitalUsecase
	validator       *validator.CustomValidator
}

func NewHospitalHandler(hospitalUsecase usecase.HospitalUsecase, validator *validator.CustomValidator) *HospitalHandler {
	return &HospitalHandler{
		hospitalUsecase: hospitalUsecase,
		validator:       validator,
	}
}

func (h *HospitalHandler) ListHospitals(w http.ResponseWriter, r *http.Request) {
	hospitals, err := h.hospitalUsecase.List(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to fetch hospitals", err)
		return
	}

	response.SuccessWithCount(w, http.StatusOK, "Hospitals retrieved successfully", hospitals, len(hospitals))
}

// NearbyHospitals handles GET /hospitals/nearby?lat=&lng=
func (h *HospitalHandler) NearbyHospitals(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	lat, latErr := strconv.ParseFloat(query.Get("lat"), 64)
	lng, lngErr := strconv.ParseFloat(query.Get("lng"), 64)
	if latErr != nil || lngErr != nil {
		response.Error(w, http.StatusBadRequest, "lat and lng query parameters must be numbers", nil)
		return
	}

	req := dto.NearbyHospitalsRequest{Latitude: lat, Longitude: lng}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	hospitals, err := h.hospitalUsecase.Nearby(r.Context(), entity.Location{Latitude: lat, Longitude: lng})
	if err != nil {
		response.InternalServerError(w, "Failed to fetch nearby hospitals", err)
		return
	}

	response.SuccessWithCount(w, http.StatusOK, "Hospitals retrieved successfully", hospitals, len(hospitals))
}
