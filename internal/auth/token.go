package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
)

// TokenService issues and validates the HS256 session tokens that carry
// the resolved user identity between requests.
type TokenService struct {
	secretKey []byte
	expiresIn time.Duration
}

// NewTokenService creates a new TokenService
func NewTokenService(secret string, expiresIn time.Duration) *TokenService {
	return &TokenService{
		secretKey: []byte(secret),
		expiresIn: expiresIn,
	}
}

// GenerateToken signs a token for the given user ID
func (s *TokenService) GenerateToken(userID int32) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"jti":     uuid.New().String(),
		"iat":     now.Unix(),
		"exp":     now.Add(s.expiresIn).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

// ValidateToken parses a token and returns the user ID it carries
func (s *TokenService) ValidateToken(tokenStr string) (int32, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secretKey, nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}
	userIDFloat, ok := claims["user_id"].(float64)
	if !ok || userIDFloat <= 0 {
		return 0, ErrInvalidToken
	}
	return int32(userIDFloat), nil
}
