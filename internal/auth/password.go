package auth

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// PasswordAuthenticator grants the Admin role to callers who know the shared
// admin password. Only the bcrypt hash is kept in memory.
type PasswordAuthenticator struct {
	hash []byte
}

// NewPasswordAuthenticator creates an authenticator for the given admin
// password. A value that already is a bcrypt hash ("$2a$...") is used as is.
func NewPasswordAuthenticator(password string) (*PasswordAuthenticator, error) {
	if strings.HasPrefix(password, "$2") {
		if _, err := bcrypt.Cost([]byte(password)); err != nil {
			return nil, fmt.Errorf("invalid bcrypt hash: %w", err)
		}
		return &PasswordAuthenticator{hash: []byte(password)}, nil
	}

	if err := ValidatePassword(password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	return &PasswordAuthenticator{hash: hash}, nil
}

// ValidatePassword checks if the password meets minimum requirements.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return ErrWeakPassword
	}
	return nil
}

// Authenticate compares the password with the stored hash.
func (a *PasswordAuthenticator) Authenticate(_ context.Context, password string) (Role, error) {
	if err := bcrypt.CompareHashAndPassword(a.hash, []byte(password)); err != nil {
		return None{}, ErrInvalidCredentials
	}
	return Admin{}, nil
}
