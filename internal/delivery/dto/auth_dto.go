package dto

import "time"

// CurrentUserResponse describes the bearer of the presented token.
type CurrentUserResponse struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}
