package middleware

import (
	"context"
	"net/http"
	"strings"

	"health-management/internal/usecase"
	"health-management/pkg/jwt"
	"health-management/pkg/response"
)

type contextKey string

const (
	ClaimsKey contextKey = "claims"
)

type AuthMiddleware struct {
	jwtService  *jwt.JWTService
	authUsecase usecase.AuthUsecase
}

func NewAuthMiddleware(jwtService *jwt.JWTService, authUsecase usecase.AuthUsecase) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService:  jwtService,
		authUsecase: authUsecase,
	}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Authorization header is required")
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(w, "Invalid authorization header format")
			return
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			response.Unauthorized(w, "Invalid or expired token")
			return
		}

		revoked, err := m.authUsecase.IsTokenRevoked(r.Context(), claims.RevocationID())
		if err != nil {
			response.InternalServerError(w, "Failed to validate token", err)
			return
		}
		if revoked {
			response.Unauthorized(w, "Token has been revoked")
			return
		}

		ctx := context.WithValue(r.Context(), ClaimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AuthenticateIf applies Authenticate only when required is true.
func (m *AuthMiddleware) AuthenticateIf(required bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !required {
			return next
		}
		return m.Authenticate(next)
	}
}

// GetClaimsFromContext extracts the verified claims from context
func GetClaimsFromContext(ctx context.Context) (*jwt.Claims, bool) {
	claims, ok := ctx.Value(ClaimsKey).(*jwt.Claims)
	return claims, ok
}

// GetUserIDFromContext extracts user ID from context
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	claims, ok := GetClaimsFromContext(ctx)
	if !ok {
		return "", false
	}
	return claims.UserID, true
}
