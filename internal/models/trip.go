package models

import (
	"time"

	"github.com/mmynk/tripsplit/internal/money"
)

// DateLayout is the calendar date format used for trip ranges and expense dates.
const DateLayout = "2006-01-02"

// Trip is a group trip whose expenses are split among its participants.
type Trip struct {
	// ID is the unique identifier for the trip (UUID format).
	ID string `json:"id"`

	// Title is the display name of the trip (e.g., "Lake Garda 2026").
	Title string `json:"title"`

	// StartDate and EndDate bound the trip (YYYY-MM-DD). The calculator
	// ignores them; expenses outside the range are still counted.
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`

	// Participants share the trip's costs according to their PersonCount.
	Participants []Participant `json:"participants"`

	// Expenses are the payments made by participants on behalf of the group.
	Expenses []Expense `json:"expenses"`

	// CreatedAt and UpdatedAt are Unix timestamps.
	CreatedAt int64 `json:"createdAt"`
	UpdatedAt int64 `json:"updatedAt"`
}

// Participant is a person (or household) taking part in a trip.
type Participant struct {
	// ID is the unique identifier for the participant (UUID format).
	ID string `json:"id"`

	// Name is the display name.
	Name string `json:"name"`

	// Email is where the invite link is sent.
	Email string `json:"email"`

	// PersonCount is the participant's weight: how many shares of the group
	// they account for. A family of four booked under one name has 4.
	PersonCount int `json:"personCount"`

	// InviteToken is the secret that lets the participant open the trip as a guest.
	InviteToken string `json:"inviteToken"`
}

// Expense is a single payment made by one participant for the group.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `json:"id"`

	// PayerID references the Participant who paid.
	PayerID string `json:"payerId"`

	// Amount is the paid amount in the trip currency.
	Amount float64 `json:"amount"`

	// Reason is a free-text description (e.g., "Groceries").
	Reason string `json:"reason"`

	// Date is the day the expense was made (YYYY-MM-DD).
	Date string `json:"date"`
}

// FindParticipant returns the participant with the given ID.
func (t *Trip) FindParticipant(id string) (*Participant, bool) {
	for i := range t.Participants {
		if t.Participants[i].ID == id {
			return &t.Participants[i], true
		}
	}
	return nil, false
}

// ExpensesPaidBy returns the expenses whose payer is the given participant.
func (t *Trip) ExpensesPaidBy(participantID string) []Expense {
	var out []Expense
	for _, e := range t.Expenses {
		if e.PayerID == participantID {
			out = append(out, e)
		}
	}
	return out
}

// TotalSpent is the sum of all expense amounts, added in decimal.
func (t *Trip) TotalSpent() float64 {
	amounts := make([]float64, len(t.Expenses))
	for i, e := range t.Expenses {
		amounts[i] = e.Amount
	}
	return money.Sum(amounts...)
}

// Touch sets UpdatedAt, and CreatedAt if it is still zero.
func (t *Trip) Touch(now time.Time) {
	if t.CreatedAt == 0 {
		t.CreatedAt = now.Unix()
	}
	t.UpdatedAt = now.Unix()
}
