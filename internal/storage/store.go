// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/tripsplit/internal/models"
)

// ErrNotFound is returned (wrapped) when a trip does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for trip storage operations.
// A trip is saved and loaded as a whole, including participants and expenses.
// This abstraction allows swapping storage backends (SQLite, Redis)
// without changing the service layer. Concurrent saves of the same trip are
// last-write-wins.
type Store interface {
	// CreateTrip persists a new trip.
	// The trip.ID and CreatedAt fields will be populated by the store if empty.
	CreateTrip(ctx context.Context, trip *models.Trip) error

	// GetTrip retrieves a trip by its ID.
	// Returns an error wrapping ErrNotFound if the trip does not exist.
	GetTrip(ctx context.Context, tripID string) (*models.Trip, error)

	// ListTrips returns all trips, most recently created first.
	ListTrips(ctx context.Context) ([]*models.Trip, error)

	// SaveTrip replaces an existing trip with the given one.
	// Returns an error wrapping ErrNotFound if the trip does not exist.
	SaveTrip(ctx context.Context, trip *models.Trip) error

	// DeleteTrip removes a trip with all its participants and expenses.
	DeleteTrip(ctx context.Context, tripID string) error

	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}
