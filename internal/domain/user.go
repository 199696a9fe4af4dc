package domain

import "time"

// User represents a registered account. The password hash is never
// serialized in API responses.
type User struct {
	ID           int32     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// UserRepository defines the interface for user persistence operations
type UserRepository interface {
	// CreateWithCategories inserts the user row and its seed categories in
	// a single database transaction. Either both persist or neither does.
	CreateWithCategories(user *User, seed []CategorySeed) (*User, error)
	GetByID(id int32) (*User, error)
	GetByUsername(username string) (*User, error)
}
