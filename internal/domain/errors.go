package domain

import "errors"

// Domain errors
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrUsernameRequired    = errors.New("username is required")
	ErrUsernameTaken       = errors.New("username is already taken")
	ErrPasswordRequired    = errors.New("password is required")
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrNameRequired        = errors.New("name is required")
	ErrNameTooLong         = errors.New("name exceeds maximum length")
	ErrInvalidCategoryType = errors.New("invalid category type")

	ErrCategoryNotFound      = errors.New("category not found")
	ErrCategoryAlreadyExists = errors.New("category already exists")
	ErrCategoryNotOwned      = errors.New("category does not belong to user")

	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInvalidDate         = errors.New("date must be in YYYY-MM-DD format")
)

// Validation constants
const (
	MaxUsernameLength     = 64
	MaxCategoryNameLength = 100
)
