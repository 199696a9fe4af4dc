package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/moneta-app/moneta-backend/internal/domain"
	"github.com/moneta-app/moneta-backend/internal/middleware"
	"github.com/moneta-app/moneta-backend/internal/service"
	"github.com/rs/zerolog/log"
)

// AuthHandler handles registration and login HTTP requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID        int32  `json:"id"`
	Username  string `json:"username"`
	CreatedAt string `json:"createdAt"`
}

// LoginResponse represents a successful login
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	user, err := h.authService.Register(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUsernameRequired) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "username", Message: "Username cannot be empty"},
			})
		}
		if errors.Is(err, domain.ErrNameTooLong) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "username", Message: "Username must be 64 characters or less"},
			})
		}
		if errors.Is(err, domain.ErrPasswordRequired) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "password", Message: "Password cannot be empty"},
			})
		}
		if errors.Is(err, domain.ErrUsernameTaken) {
			return NewConflictError(c, "This username is already taken")
		}
		log.Error().Err(err).Msg("Failed to register user")
		return NewInternalError(c, "Failed to register")
	}

	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	token, user, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return NewUnauthorizedError(c, "Invalid username or password")
		}
		log.Error().Err(err).Msg("Failed to log in user")
		return NewInternalError(c, "Failed to log in")
	}

	return c.JSON(http.StatusOK, LoginResponse{
		Token: token,
		User:  toUserResponse(user),
	})
}

// Me handles GET /api/v1/auth/me
func (h *AuthHandler) Me(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	user, err := h.authService.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return NewUnauthorizedError(c, "User no longer exists")
		}
		log.Error().Err(err).Int32("user_id", userID).Msg("Failed to get user")
		return NewInternalError(c, "Failed to get user")
	}

	return c.JSON(http.StatusOK, toUserResponse(user))
}

func toUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}
