package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/storage"
)

// inviteTokenBytes is the entropy of an invite token.
const inviteTokenBytes = 18

// NewInviteToken returns a random URL-safe token for an invite link.
func NewInviteToken() (string, error) {
	b := make([]byte, inviteTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate invite token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// TripGetter is the part of the store the invite authenticator needs.
type TripGetter interface {
	GetTrip(ctx context.Context, tripID string) (*models.Trip, error)
}

// InviteAuthenticator grants the Guest role to the participant whose invite
// token matches.
type InviteAuthenticator struct {
	trips TripGetter
}

// NewInviteAuthenticator creates an authenticator backed by the trip store.
func NewInviteAuthenticator(trips TripGetter) *InviteAuthenticator {
	return &InviteAuthenticator{trips: trips}
}

// Authenticate looks the token up among the trip's participants.
func (a *InviteAuthenticator) Authenticate(ctx context.Context, cred InviteCredential) (Role, error) {
	if cred.TripID == "" || cred.Token == "" {
		return None{}, ErrInvalidCredentials
	}

	trip, err := a.trips.GetTrip(ctx, cred.TripID)
	if errors.Is(err, storage.ErrNotFound) {
		return None{}, ErrInvalidCredentials
	}
	if err != nil {
		return None{}, fmt.Errorf("failed to load trip: %w", err)
	}

	for _, p := range trip.Participants {
		if p.InviteToken != "" && subtle.ConstantTimeCompare([]byte(p.InviteToken), []byte(cred.Token)) == 1 {
			return Guest{TripID: trip.ID, ParticipantID: p.ID}, nil
		}
	}
	return None{}, ErrInvalidCredentials
}
