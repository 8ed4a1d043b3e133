package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrEmptyTitle       = errors.New("title is required")
	ErrEmptyName        = errors.New("name is required")
	ErrInvalidWeight    = errors.New("person count must be at least 1")
	ErrInvalidAmount    = errors.New("amount must be greater than zero")
	ErrEmptyReason      = errors.New("reason is required")
	ErrInvalidDate      = errors.New("date must be formatted as YYYY-MM-DD")
	ErrInvalidDateRange = errors.New("end date must not be before start date")
	ErrUnknownPayer     = errors.New("payer is not a participant of this trip")
)

// Validate checks the trip header. Participants and expenses are validated
// individually when they are added.
func (t *Trip) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTitle
	}
	start, err := parseDate(t.StartDate)
	if err != nil {
		return fmt.Errorf("start date: %w", err)
	}
	end, err := parseDate(t.EndDate)
	if err != nil {
		return fmt.Errorf("end date: %w", err)
	}
	if end.Before(start) {
		return ErrInvalidDateRange
	}
	return nil
}

// Validate rejects participants the calculator cannot handle.
func (p *Participant) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if p.PersonCount < 1 {
		return ErrInvalidWeight
	}
	return nil
}

// Validate checks the expense on its own and that its payer belongs to trip.
func (e *Expense) Validate(trip *Trip) error {
	if !(e.Amount > 0) {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(e.Reason) == "" {
		return ErrEmptyReason
	}
	if _, err := parseDate(e.Date); err != nil {
		return err
	}
	if _, ok := trip.FindParticipant(e.PayerID); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPayer, e.PayerID)
	}
	return nil
}

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return d, nil
}
