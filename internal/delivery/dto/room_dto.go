package dto

type RoomTokenResponse struct {
	Token string `json:"token"`
}
