package middleware

import (
	"strings"

	"tally/internal/delivery/http/response"
	domainerrors "tally/internal/domain/errors"
	"tally/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// currentUserKey is the echo context key the authenticated identity is stored under.
const currentUserKey = "currentUser"

// CurrentUser is the identity extracted from a verified access token.
type CurrentUser struct {
	ID       uuid.UUID
	Username string
	Email    string
}

// AuthMiddleware provides middleware for JWT authentication.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate validates the Bearer token and stores the caller's identity on
// the request context. Every failure mode returns 401 with the same shape so
// callers cannot probe token internals.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "Authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return response.Unauthorized(c, "Invalid token format, must be Bearer token")
		}

		claims, err := m.tokenSvc.Verify(tokenString)
		if err != nil {
			return response.Unauthorized(c, domainerrors.ErrUnauthorized.Message())
		}

		c.Set(currentUserKey, &CurrentUser{
			ID:       claims.UserID,
			Username: claims.Username,
			Email:    claims.Email,
		})

		return next(c)
	}
}

// GetCurrentUser returns the identity stored by Authenticate.
// It must only be called from handlers behind that middleware.
func GetCurrentUser(c echo.Context) (*CurrentUser, error) {
	user, ok := c.Get(currentUserKey).(*CurrentUser)
	if !ok || user == nil {
		return nil, domainerrors.ErrUnauthorized
	}

	return user, nil
}
