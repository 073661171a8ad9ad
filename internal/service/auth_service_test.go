package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testJWTSecret = "test-secret"

func newAuthService(t *testing.T) AuthService {
	t.Helper()
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	return NewAuthService([]string{"Admin@AAAMO.com", "ops@aaamo.com"}, hash, testJWTSecret, time.Hour)
}

func TestLoginIssuesAdminToken(t *testing.T) {
	svc := newAuthService(t)

	token, expiresAt, err := svc.Login(context.Background(), " admin@aaamo.com ", "s3cret-pass")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if time.Until(expiresAt) <= 0 {
		t.Errorf("Expected future expiry, got %v", expiresAt)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("Expected a valid token, got %v", err)
	}
	if claims["role"] != AdminRole || claims["user_id"] != "admin@aaamo.com" {
		t.Errorf("Unexpected claims: %v", claims)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newAuthService(t)

	tests := []struct {
		name     string
		email    string
		password string
		want     error
	}{
		{"wrong password", "admin@aaamo.com", "nope", ErrInvalidCredentials},
		{"unknown email", "someone@aaamo.com", "s3cret-pass", ErrInvalidCredentials},
		{"empty email", "", "s3cret-pass", ErrIncompleteData},
		{"empty password", "admin@aaamo.com", "", ErrIncompleteData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := svc.Login(context.Background(), tt.email, tt.password); !errors.Is(err, tt.want) {
				t.Errorf("Login() error = %v, want %v", err, tt.want)
			}
		})
	}
}
