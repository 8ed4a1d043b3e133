package auth

import (
	"context"
	"errors"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
)

// Authenticator turns a credential into a Role.
// This abstraction allows swapping between different auth methods
// (shared admin password, invite links, OAuth, ...) without changing the
// service layer code.
type Authenticator[C any] interface {
	// Authenticate verifies the credential and returns the caller's role.
	// Returns ErrInvalidCredentials if the credential is not accepted.
	Authenticate(ctx context.Context, credential C) (Role, error)
}

// InviteCredential is what a guest presents: the trip from the invite link
// and the participant's invite token.
type InviteCredential struct {
	TripID string
	Token  string
}

var (
	_ Authenticator[string]           = (*PasswordAuthenticator)(nil)
	_ Authenticator[InviteCredential] = (*InviteAuthenticator)(nil)
)
