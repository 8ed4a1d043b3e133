// Package calculator computes trip balances and the transfers that settle them.
//
// Both entry points are pure: they read their input, allocate fresh output and
// may be called concurrently for any number of trips.
package calculator

// ParticipantForBalance is the minimal participant information the balance
// calculation needs.
type ParticipantForBalance struct {
	ID     string
	Name   string
	Weight int // Number of shares; callers guarantee Weight > 0
}

// ExpenseForBalance is the minimal expense information the balance
// calculation needs.
type ExpenseForBalance struct {
	PayerID string
	Amount  float64
}

// TripForBalance is a read-only snapshot of a trip.
type TripForBalance struct {
	Participants []ParticipantForBalance
	Expenses     []ExpenseForBalance
}

// ParticipantBalance is the balance of one participant.
type ParticipantBalance struct {
	ParticipantID string
	Name          string
	Paid          float64 // Sum of expenses this participant paid
	TargetShare   float64 // What this participant should have paid
	Balance       float64 // Paid - TargetShare. Positive = owed money, Negative = owes money
}

// ComputeBalances returns one balance per participant, in participant order.
//
// Algorithm:
//   - share per weight unit = total expenses / total weight
//   - target share = share per weight unit × participant weight
//   - balance = paid - target share
//
// A trip whose total weight is zero yields no balances. An expense whose payer
// is not a participant still raises everyone's target share but is credited to
// nobody, so the balances of such a trip do not sum to zero. Use
// OrphanExpenses to detect that case.
func ComputeBalances(trip TripForBalance) []ParticipantBalance {
	var totalExpenses float64
	paidBy := make(map[string]float64, len(trip.Participants))
	for _, e := range trip.Expenses {
		totalExpenses += e.Amount
		paidBy[e.PayerID] += e.Amount
	}

	var totalWeight int
	for _, p := range trip.Participants {
		totalWeight += p.Weight
	}
	if totalWeight == 0 {
		return []ParticipantBalance{}
	}

	sharePerWeightUnit := totalExpenses / float64(totalWeight)

	balances := make([]ParticipantBalance, len(trip.Participants))
	for i, p := range trip.Participants {
		targetShare := sharePerWeightUnit * float64(p.Weight)
		paid := paidBy[p.ID]
		balances[i] = ParticipantBalance{
			ParticipantID: p.ID,
			Name:          p.Name,
			Paid:          paid,
			TargetShare:   targetShare,
			Balance:       paid - targetShare,
		}
	}
	return balances
}
