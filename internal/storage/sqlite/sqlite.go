// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Foreign keys are per connection in SQLite; keep a single one.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Ping checks the database connection.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// CreateTrip persists a new trip with its participants and expenses.
func (s *SQLiteStore) CreateTrip(ctx context.Context, trip *models.Trip) error {
	if trip.ID == "" {
		trip.ID = uuid.New().String()
	}
	trip.Touch(time.Now())

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO trips (id, title, start_date, end_date, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		trip.ID, trip.Title, trip.StartDate, trip.EndDate, trip.CreatedAt, trip.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert trip: %w", err)
	}

	if err := insertChildren(ctx, tx, trip); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// SaveTrip overwrites the trip header and replaces all participants and expenses.
// The caller's UpdatedAt only changes once the commit succeeds.
func (s *SQLiteStore) SaveTrip(ctx context.Context, trip *models.Trip) error {
	updatedAt := time.Now().Unix()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"UPDATE trips SET title = ?, start_date = ?, end_date = ?, updated_at = ? WHERE id = ?",
		trip.Title, trip.StartDate, trip.EndDate, updatedAt, trip.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update trip: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("trip %s: %w", trip.ID, storage.ErrNotFound)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM participants WHERE trip_id = ?", trip.ID); err != nil {
		return fmt.Errorf("failed to clear participants: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM expenses WHERE trip_id = ?", trip.ID); err != nil {
		return fmt.Errorf("failed to clear expenses: %w", err)
	}

	if err := insertChildren(ctx, tx, trip); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	trip.UpdatedAt = updatedAt
	return nil
}

func insertChildren(ctx context.Context, tx *sql.Tx, trip *models.Trip) error {
	for i := range trip.Participants {
		p := &trip.Participants[i]
		if p.ID == "" {
			p.ID = uuid.New().String()
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO participants (id, trip_id, position, name, email, person_count, invite_token)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			p.ID, trip.ID, i, p.Name, p.Email, p.PersonCount, p.InviteToken,
		)
		if err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}

	for i := range trip.Expenses {
		e := &trip.Expenses[i]
		if e.ID == "" {
			e.ID = uuid.New().String()
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO expenses (id, trip_id, position, payer_id, amount, reason, date)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			e.ID, trip.ID, i, e.PayerID, e.Amount, e.Reason, e.Date,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense: %w", err)
		}
	}

	return nil
}

// GetTrip retrieves a trip by ID, including all participants and expenses.
func (s *SQLiteStore) GetTrip(ctx context.Context, tripID string) (*models.Trip, error) {
	trip := &models.Trip{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, title, start_date, end_date, created_at, updated_at FROM trips WHERE id = ?",
		tripID,
	).Scan(&trip.ID, &trip.Title, &trip.StartDate, &trip.EndDate, &trip.CreatedAt, &trip.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("trip %s: %w", tripID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}

	if err := s.loadChildren(ctx, trip); err != nil {
		return nil, err
	}

	return trip, nil
}

// ListTrips returns every trip with its participants and expenses.
func (s *SQLiteStore) ListTrips(ctx context.Context) ([]*models.Trip, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, title, start_date, end_date, created_at, updated_at FROM trips ORDER BY created_at DESC, id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}

	var trips []*models.Trip
	for rows.Next() {
		trip := &models.Trip{}
		if err := rows.Scan(&trip.ID, &trip.Title, &trip.StartDate, &trip.EndDate, &trip.CreatedAt, &trip.UpdatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan trip: %w", err)
		}
		trips = append(trips, trip)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate trips: %w", err)
	}

	// Children are loaded after the cursor is closed: the store holds one connection.
	for _, trip := range trips {
		if err := s.loadChildren(ctx, trip); err != nil {
			return nil, err
		}
	}

	return trips, nil
}

// DeleteTrip removes a trip by ID. Participants and expenses cascade.
func (s *SQLiteStore) DeleteTrip(ctx context.Context, tripID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM trips WHERE id = ?", tripID)
	if err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("trip %s: %w", tripID, storage.ErrNotFound)
	}
	return nil
}

func (s *SQLiteStore) loadChildren(ctx context.Context, trip *models.Trip) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, email, person_count, invite_token
		 FROM participants WHERE trip_id = ? ORDER BY position`,
		trip.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get participants: %w", err)
	}
	for rows.Next() {
		var p models.Participant
		if err := rows.Scan(&p.ID, &p.Name, &p.Email, &p.PersonCount, &p.InviteToken); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan participant: %w", err)
		}
		trip.Participants = append(trip.Participants, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate participants: %w", err)
	}

	expenseRows, err := s.db.QueryContext(ctx,
		`SELECT id, payer_id, amount, reason, date
		 FROM expenses WHERE trip_id = ? ORDER BY position`,
		trip.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get expenses: %w", err)
	}
	for expenseRows.Next() {
		var e models.Expense
		if err := expenseRows.Scan(&e.ID, &e.PayerID, &e.Amount, &e.Reason, &e.Date); err != nil {
			expenseRows.Close()
			return fmt.Errorf("failed to scan expense: %w", err)
		}
		trip.Expenses = append(trip.Expenses, e)
	}
	expenseRows.Close()
	if err := expenseRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate expenses: %w", err)
	}

	return nil
}
