package usecase

import (
	"context"
	"strings"

	"health-management/internal/delivery/dto"

	"github.com/sirupsen/logrus"
)

// DefaultRoomIdentity is used when the caller does not choose a display name.
const DefaultRoomIdentity = "identity"

// VideoTokenIssuer issues a credential for exactly one room and one identity.
type VideoTokenIssuer interface {
	IssueVideoToken(identity, room string) (string, error)
}

type RoomUsecase interface {
	IssueToken(ctx context.Context, identity, room string) (*dto.RoomTokenResponse, error)
}

type roomUsecase struct {
	log    *logrus.Logger
	issuer VideoTokenIssuer
}

func NewRoomUsecase(log *logrus.Logger, issuer VideoTokenIssuer) RoomUsecase {
	return &roomUsecase{
		log:    log,
		issuer: issuer,
	}
}

// IssueToken has no side effects. A missing room is rejected because a video
// grant without a room authorises every room.
func (u *roomUsecase) IssueToken(ctx context.Context, identity, room string) (*dto.RoomTokenResponse, error) {
	room = strings.TrimSpace(room)
	if room == "" {
		return nil, newValidationError("Validation failed", map[string]string{"room": "room is required"})
	}

	identity = strings.TrimSpace(identity)
	if identity == "" {
		identity = DefaultRoomIdentity
	}

	token, err := u.issuer.IssueVideoToken(identity, room)
	if err != nil {
		u.log.Warnf("Failed to issue video token for room %s: %+v", room, err)
		return nil, err
	}

	return &dto.RoomTokenResponse{Token: token}, nil
}
