package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/moneta-app/moneta-backend/internal/auth"
	"github.com/rs/zerolog/log"
)

type contextKey string

// UserIDKey is the request-context key holding the authenticated user ID
const UserIDKey contextKey = "user_id"

// AuthMiddleware validates bearer tokens and resolves the user identity
// before any handler runs.
type AuthMiddleware struct {
	tokens *auth.TokenService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(tokens *auth.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Authenticate returns the echo middleware enforcing a valid session token
func (m *AuthMiddleware) Authenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "authorization header required")
			}

			tokenStr, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header format")
			}

			userID, err := m.tokens.ValidateToken(tokenStr)
			if err != nil {
				log.Debug().Err(err).Str("path", c.Request().URL.Path).Msg("Token validation failed")
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			ctx := context.WithValue(c.Request().Context(), UserIDKey, userID)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// GetUserID extracts the authenticated user ID from the request context.
// Returns 0 when the request is unauthenticated.
func GetUserID(c echo.Context) int32 {
	if userID, ok := c.Request().Context().Value(UserIDKey).(int32); ok {
		return userID
	}
	return 0
}
