package handler

import (
	"errors"
	"net/http"

	"health-management/internal/usecase"
	"health-management/pkg/response"
)

// writeUsecaseError maps validation errors to 400 and anything unexpected to
// 500 with the underlying message. Not-found sentinels are handled by callers.
func writeUsecaseError(w http.ResponseWriter, err error, failureMessage string) {
	var validationErr *usecase.ValidationError
	if errors.As(err, &validationErr) {
		response.Error(w, http.StatusBadRequest, validationErr.Message, validationErr.Fields)
		return
	}
	response.InternalServerError(w, failureMessage, err)
}
