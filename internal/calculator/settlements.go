package calculator

import (
	"cmp"
	"slices"
)

// Epsilon is the tolerance below which a balance counts as settled (one cent).
const Epsilon = 0.01

// Settlement is a single transfer from a debtor to a creditor.
type Settlement struct {
	From   string // Participant who owes
	To     string // Participant who is owed
	Amount float64
}

// party is a working copy of one side of the matching.
type party struct {
	id        string
	remaining float64
}

// ResolveSettlements returns transfers that bring every balance within
// Epsilon of zero.
//
// Algorithm (greedy, largest first):
//   - debtors are balances below -Epsilon, creditors above +Epsilon
//   - both lists are sorted once by amount, descending; ties keep input order
//   - the head debtor pays the head creditor min(debt, credit)
//   - a head whose remaining amount drops to Epsilon or less is removed
//
// The lists are not re-sorted after a transfer, so only the first pairing is
// guaranteed to be largest-with-largest. The result is not always the minimum
// number of transfers.
func ResolveSettlements(balances []ParticipantBalance) []Settlement {
	var debtors, creditors []*party
	for _, b := range balances {
		switch {
		case b.Balance < -Epsilon:
			debtors = append(debtors, &party{id: b.ParticipantID, remaining: -b.Balance})
		case b.Balance > Epsilon:
			creditors = append(creditors, &party{id: b.ParticipantID, remaining: b.Balance})
		}
	}

	byRemainingDesc := func(a, b *party) int {
		return cmp.Compare(b.remaining, a.remaining)
	}
	slices.SortStableFunc(debtors, byRemainingDesc)
	slices.SortStableFunc(creditors, byRemainingDesc)

	settlements := []Settlement{}
	for len(debtors) > 0 && len(creditors) > 0 {
		debtor, creditor := debtors[0], creditors[0]
		amount := min(debtor.remaining, creditor.remaining)

		settlements = append(settlements, Settlement{
			From:   debtor.id,
			To:     creditor.id,
			Amount: amount,
		})

		debtor.remaining -= amount
		creditor.remaining -= amount

		if debtor.remaining <= Epsilon {
			debtors = debtors[1:]
		}
		if creditor.remaining <= Epsilon {
			creditors = creditors[1:]
		}
	}

	return settlements
}
