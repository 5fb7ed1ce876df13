package handler

import (
	"net/http"

	"health-management/internal/usecase"
	"health-management/pkg/response"
)

type RoomHandler struct {
	roomUsecase usecase.RoomUsecase
}

func NewRoomHandler(roomUsecase usecase.RoomUsecase) *RoomHandler {
	return &RoomHandler{
		roomUsecase: roomUsecase,
	}
}

// IssueToken handles GET /room?identity=&room=
func (h *RoomHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	token, err := h.roomUsecase.IssueToken(r.Context(), query.Get("identity"), query.Get("room"))
	if err != nil {
		writeUsecaseError(w, err, "Failed to issue video token")
		return
	}

	response.Success(w, http.StatusOK, "Video token issued successfully", token)
}
