package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrMissingToken = errors.New("authorization token required")
)

// tokenIssuer is set on every token and required on validation.
const tokenIssuer = "tripsplit"

// JWTManager handles JWT token generation and validation.
type JWTManager struct {
	secretKey     []byte
	tokenDuration time.Duration
}

// Claims represents the custom JWT claims for a session.
type Claims struct {
	Role          RoleKind `json:"role"`
	TripID        string   `json:"trip_id,omitempty"`
	ParticipantID string   `json:"participant_id,omitempty"`
	jwt.RegisteredClaims
}

// NewJWTManager creates a new JWT manager with the given secret and token duration.
// secretKey should be a strong random string (e.g., 32 bytes).
// tokenDuration is how long tokens remain valid (e.g., 24 hours).
func NewJWTManager(secretKey string, tokenDuration time.Duration) *JWTManager {
	return &JWTManager{
		secretKey:     []byte(secretKey),
		tokenDuration: tokenDuration,
	}
}

// Generate creates a new JWT token for the given role.
func (m *JWTManager) Generate(role Role) (string, error) {
	now := time.Now()
	claims := &Claims{
		Role: role.Kind(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	switch r := role.(type) {
	case Admin:
		claims.Subject = string(KindAdmin)
	case Guest:
		claims.Subject = r.ParticipantID
		claims.TripID = r.TripID
		claims.ParticipantID = r.ParticipantID
	default:
		return "", fmt.Errorf("cannot issue a token for role %q", role.Kind())
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(m.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Validate parses and validates a JWT token, returning the claims if valid.
func (m *JWTManager) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(*jwt.Token) (any, error) { return m.secretKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
	)

	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// ToRole converts the claims back into a Role.
func (c *Claims) ToRole() (Role, error) {
	switch c.Role {
	case KindAdmin:
		return Admin{}, nil
	case KindGuest:
		if c.TripID == "" || c.ParticipantID == "" {
			return nil, ErrInvalidToken
		}
		return Guest{TripID: c.TripID, ParticipantID: c.ParticipantID}, nil
	default:
		return nil, ErrInvalidToken
	}
}
