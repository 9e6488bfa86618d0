package middleware

import (
	deliverycontext "pressmart/internal/delivery/context"
	"pressmart/internal/delivery/http/response"
	"pressmart/internal/domain/service"
	"pressmart/internal/infra/auth"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware provides middleware for JWT authentication.
// It only authenticates; authorization decisions live in the usecase layer,
// because the access token carries the identity alone and the acting role is
// always read fresh from storage.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate is the core middleware function that validates the JWT access token.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "INVALID_TOKEN", "Authorization header is missing")
		}

		tokenString, err := auth.ExtractBearer(authHeader)
		if err != nil {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid token format, must be Bearer token")
		}

		userID, err := m.tokenSvc.VerifyAccess(tokenString)
		if err != nil {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid or expired token")
		}

		// Set the authenticated identity on the context for handlers to use
		deliverycontext.SetUserID(c, userID)

		return next(c)
	}
}
