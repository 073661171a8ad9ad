package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the cost factor for admin password hashes
const BcryptCost = 10

var ErrInvalidCredentials = errors.New("invalid email or password")

// AdminRole is the role claim carried by admin tokens
const AdminRole = "admin"

// AuthService signs admin sessions
type AuthService interface {
	Login(ctx context.Context, email, password string) (token string, expiresAt time.Time, err error)
}

type authService struct {
	adminEmails  []string
	passwordHash []byte
	jwtSecret    []byte
	tokenTTL     time.Duration
	now          func() time.Time
}

// NewAuthService creates an AuthService for a fixed list of admin emails sharing one bcrypt hash
func NewAuthService(adminEmails []string, passwordHash, jwtSecret string, tokenTTL time.Duration) AuthService {
	emails := make([]string, 0, len(adminEmails))
	for _, e := range adminEmails {
		emails = append(emails, strings.ToLower(strings.TrimSpace(e)))
	}
	return &authService{
		adminEmails:  emails,
		passwordHash: []byte(passwordHash),
		jwtSecret:    []byte(jwtSecret),
		tokenTTL:     tokenTTL,
		now:          time.Now,
	}
}

// HashPassword produces a hash suitable for ADMIN_PASSWORD_HASH
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, time.Time, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", time.Time{}, ErrIncompleteData
	}

	// compare even for unknown emails so both failures take the same time
	pwErr := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password))
	if !slices.Contains(s.adminEmails, email) || pwErr != nil {
		return "", time.Time{}, ErrInvalidCredentials
	}

	now := s.now()
	expiresAt := now.Add(s.tokenTTL)
	claims := jwt.MapClaims{
		"user_id": email,
		"role":    AdminRole,
		"iat":     now.Unix(),
		"exp":     expiresAt.Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return token, expiresAt, nil
}
