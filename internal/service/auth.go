package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mhalden/closet/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 7 * 24 * time.Hour

// AuthService guards the API with a single shared access password.
// A successful login returns a signed JWT which the middleware then
// validates on every request. When no password hash is configured the
// service is disabled and the API is open (local single-user setup).
type AuthService struct {
	passwordHash []byte
	jwtSecret    []byte
}

// NewAuthService creates a new AuthService. passwordHash is a bcrypt
// hash of the access password; empty disables authentication.
func NewAuthService(passwordHash, jwtSecret string) *AuthService {
	return &AuthService{
		passwordHash: []byte(passwordHash),
		jwtSecret:    []byte(jwtSecret),
	}
}

// Enabled reports whether an access password is configured.
func (s *AuthService) Enabled() bool {
	return len(s.passwordHash) > 0
}

// Login verifies the access password and returns a signed JWT.
func (s *AuthService) Login(password string) (string, error) {
	if !s.Enabled() {
		return "", fmt.Errorf("%w: authentication is not configured", domain.ErrInvalidInput)
	}

	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return "", domain.ErrUnauthorized
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "closet",
		"iat": now.Unix(),
		"exp": now.Add(tokenTTL).Unix(),
	})

	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and validates a JWT token string.
func (s *AuthService) ValidateToken(tokenString string) error {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return domain.ErrUnauthorized
	}
	return nil
}
