package usecase

import (
	"context"
	"errors"
	"time"

	"health-management/internal/delivery/dto"
	"health-management/internal/domain/repository"
	"health-management/pkg/jwt"

	"github.com/sirupsen/logrus"
)

var (
	ErrTokenNotRevocable = errors.New("token carries no id and cannot be revoked")
)

// AuthUsecase covers the session operations this service owns. Sign-in and
// registration live with the external auth provider.
type AuthUsecase interface {
	Logout(ctx context.Context, claims *jwt.Claims) error
	GetCurrentUser(ctx context.Context, claims *jwt.Claims) *dto.CurrentUserResponse
	IsTokenRevoked(ctx context.Context, tokenID string) (bool, error)
}

type authUsecase struct {
	log       *logrus.Logger
	tokenRepo repository.TokenRepository
	now       func() time.Time
}

func NewAuthUsecase(log *logrus.Logger, tokenRepo repository.TokenRepository) AuthUsecase {
	return &authUsecase{
		log:       log,
		tokenRepo: tokenRepo,
		now:       time.Now,
	}
}

// Logout revokes the presented token until it would have expired anyway.
func (u *authUsecase) Logout(ctx context.Context, claims *jwt.Claims) error {
	tokenID := claims.RevocationID()
	if tokenID == "" {
		return ErrTokenNotRevocable
	}

	if err := u.tokenRepo.Revoke(ctx, tokenID, claims.RemainingTTL(u.now())); err != nil {
		u.log.Warnf("Failed to revoke token %s: %+v", tokenID, err)
		return err
	}

	u.log.Infof("User logged out: user=%s", claims.UserID)
	return nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, claims *jwt.Claims) *dto.CurrentUserResponse {
	resp := &dto.CurrentUserResponse{
		UserID: claims.UserID,
		Email:  claims.Email,
	}
	if claims.ExpiresAt != nil {
		resp.ExpiresAt = claims.ExpiresAt.Time.UTC()
	}
	return resp
}

func (u *authUsecase) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	if tokenID == "" {
		return false, nil
	}
	return u.tokenRepo.IsRevoked(ctx, tokenID)
}
