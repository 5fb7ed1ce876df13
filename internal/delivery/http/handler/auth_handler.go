package handler

import (
	"errors"
	"net/http"

	"health-management/internal/delivery/http/middleware"
	"health-management/internal/usecase"
	"health-management/pkg/response"
)

type AuthHandler struct {
	authUsecase usecase.AuthUsecase
}

func NewAuthHandler(authUsecase usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
	}
}

// Logout revokes the bearer token used for this request
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	if err := h.authUsecase.Logout(r.Context(), claims); err != nil {
		if errors.Is(err, usecase.ErrTokenNotRevocable) {
			response.Error(w, http.StatusBadRequest, "Token cannot be revoked", nil)
			return
		}
		response.InternalServerError(w, "Failed to logout", err)
		return
	}

	response.Success(w, http.StatusOK, "Logout successful", nil)
}

func (h *AuthHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	response.Success(w, http.StatusOK, "User retrieved successfully", h.authUsecase.GetCurrentUser(r.Context(), claims))
}
