package service

import (
	"errors"
	"strings"

	"github.com/moneta-app/moneta-backend/internal/auth"
	"github.com/moneta-app/moneta-backend/internal/domain"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration and credential verification
type AuthService struct {
	userRepo domain.UserRepository
	tokens   *auth.TokenService
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo domain.UserRepository, tokens *auth.TokenService) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// Register creates a new user and seeds the default category set in one
// database transaction. The password is stored as a bcrypt salted hash,
// never plaintext.
func (s *AuthService) Register(username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, domain.ErrUsernameRequired
	}
	if len(username) > domain.MaxUsernameLength {
		return nil, domain.ErrNameTooLong
	}
	if password == "" {
		return nil, domain.ErrPasswordRequired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
	}

	created, err := s.userRepo.CreateWithCategories(user, domain.DefaultCategories())
	if err != nil {
		if !errors.Is(err, domain.ErrUsernameTaken) {
			log.Error().Err(err).Str("username", username).Msg("Failed to create user")
		}
		return nil, err
	}

	log.Info().Int32("user_id", created.ID).Str("username", created.Username).Msg("User registered")
	return created, nil
}

// Login verifies the credentials and issues a session token. Bcrypt's
// comparison is constant time over the salted hash.
func (s *AuthService) Login(username, password string) (string, *domain.User, error) {
	user, err := s.userRepo.GetByUsername(strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// GetUserByID retrieves a user by their ID
func (s *AuthService) GetUserByID(id int32) (*domain.User, error) {
	return s.userRepo.GetByID(id)
}
