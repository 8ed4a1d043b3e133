package middleware

import (
	"context"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/tripsplit/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// RoleKey is the context key for storing the caller's auth.Role.
const RoleKey contextKey = "role"

// WithRole returns a copy of ctx carrying role.
func WithRole(ctx context.Context, role auth.Role) context.Context {
	return context.WithValue(ctx, RoleKey, role)
}

// GetRole extracts the caller's role from the context.
// Returns auth.None if the caller is not authenticated.
func GetRole(ctx context.Context) auth.Role {
	if role, ok := ctx.Value(RoleKey).(auth.Role); ok {
		return role
	}
	return auth.None{}
}

// bearerToken returns the token of an "Authorization: Bearer <token>" header.
func bearerToken(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func roleFromHeader(jwtManager *auth.JWTManager, header string) (auth.Role, error) {
	tokenString, ok := bearerToken(header)
	if !ok {
		return nil, auth.ErrInvalidToken
	}
	claims, err := jwtManager.Validate(tokenString)
	if err != nil {
		return nil, err
	}
	return claims.ToRole()
}

// RequireAuth returns an interceptor that validates JWT tokens and requires authentication.
// It extracts the token from the Authorization header, validates it, and adds
// the caller's role to the request context.
func RequireAuth(jwtManager *auth.JWTManager) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			authHeader := req.Header().Get("Authorization")
			if authHeader == "" {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
			}

			role, err := roleFromHeader(jwtManager, authHeader)
			if err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			return next(WithRole(ctx, role), req)
		}
	}
}

// OptionalAuth returns an interceptor that validates JWT tokens if present, but allows
// requests without authentication. Invalid tokens are treated as anonymous.
func OptionalAuth(jwtManager *auth.JWTManager) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if authHeader := req.Header().Get("Authorization"); authHeader != "" {
				if role, err := roleFromHeader(jwtManager, authHeader); err == nil {
					ctx = WithRole(ctx, role)
				}
			}
			return next(ctx, req)
		}
	}
}
