package service

import (
	"github.com/mmynk/tripsplit/internal/auth"
	"github.com/mmynk/tripsplit/internal/calculator"
	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/money"
	v1 "github.com/mmynk/tripsplit/pkg/api/tripsplitv1"
)

// forBalance converts a stored trip into the calculator's input.
func forBalance(trip *models.Trip) calculator.TripForBalance {
	in := calculator.TripForBalance{
		Participants: make([]calculator.ParticipantForBalance, len(trip.Participants)),
		Expenses:     make([]calculator.ExpenseForBalance, len(trip.Expenses)),
	}
	for i, p := range trip.Participants {
		in.Participants[i] = calculator.ParticipantForBalance{
			ID:     p.ID,
			Name:   p.Name,
			Weight: p.PersonCount,
		}
	}
	for i, e := range trip.Expenses {
		in.Expenses[i] = calculator.ExpenseForBalance{
			PayerID: e.PayerID,
			Amount:  e.Amount,
		}
	}
	return in
}

// participantToAPI hides contact details and invite tokens from everyone but
// the admin. A guest still sees their own e-mail.
func participantToAPI(p *models.Participant, role auth.Role) *v1.Participant {
	out := &v1.Participant{
		ID:          p.ID,
		Name:        p.Name,
		PersonCount: int32(p.PersonCount),
	}
	switch r := role.(type) {
	case auth.Admin:
		out.Email = p.Email
		out.InviteToken = p.InviteToken
	case auth.Guest:
		if r.ParticipantID == p.ID {
			out.Email = p.Email
		}
	}
	return out
}

func expenseToAPI(trip *models.Trip, e *models.Expense) *v1.Expense {
	out := &v1.Expense{
		ID:      e.ID,
		PayerID: e.PayerID,
		Amount:  money.Round(e.Amount),
		Reason:  e.Reason,
		Date:    e.Date,
	}
	if p, ok := trip.FindParticipant(e.PayerID); ok {
		out.PayerName = p.Name
	}
	return out
}

// tripToAPI renders trip as seen by role. Guests only get the expenses they
// paid. TotalSpent always covers the whole trip.
func tripToAPI(trip *models.Trip, role auth.Role) *v1.Trip {
	out := &v1.Trip{
		ID:           trip.ID,
		Title:        trip.Title,
		StartDate:    trip.StartDate,
		EndDate:      trip.EndDate,
		Participants: make([]*v1.Participant, 0, len(trip.Participants)),
		Expenses:     make([]*v1.Expense, 0, len(trip.Expenses)),
		TotalSpent:   money.Round(trip.TotalSpent()),
		CreatedAt:    trip.CreatedAt,
		UpdatedAt:    trip.UpdatedAt,
	}
	for i := range trip.Participants {
		out.Participants = append(out.Participants, participantToAPI(&trip.Participants[i], role))
	}

	guest, isGuest := role.(auth.Guest)
	for i := range trip.Expenses {
		e := &trip.Expenses[i]
		if isGuest && e.PayerID != guest.ParticipantID {
			continue
		}
		out.Expenses = append(out.Expenses, expenseToAPI(trip, e))
	}
	return out
}

func tripSummaryToAPI(trip *models.Trip) *v1.TripSummary {
	return &v1.TripSummary{
		ID:               trip.ID,
		Title:            trip.Title,
		StartDate:        trip.StartDate,
		EndDate:          trip.EndDate,
		ParticipantCount: int32(len(trip.Participants)),
		ExpenseCount:     int32(len(trip.Expenses)),
		TotalSpent:       money.Round(trip.TotalSpent()),
	}
}

func balanceToAPI(b calculator.ParticipantBalance, currency string) *v1.ParticipantBalance {
	return &v1.ParticipantBalance{
		ParticipantID:      b.ParticipantID,
		Name:               b.Name,
		Paid:               b.Paid,
		TargetShare:        b.TargetShare,
		Balance:            b.Balance,
		PaidDisplay:        money.Format(b.Paid, currency),
		TargetShareDisplay: money.Format(b.TargetShare, currency),
		BalanceDisplay:     money.Format(b.Balance, currency),
	}
}

func settlementToAPI(s calculator.Settlement, names map[string]string, currency string) *v1.Settlement {
	return &v1.Settlement{
		From:          s.From,
		FromName:      names[s.From],
		To:            s.To,
		ToName:        names[s.To],
		Amount:        s.Amount,
		AmountDisplay: money.Format(s.Amount, currency),
	}
}
