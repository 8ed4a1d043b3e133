package calculator

import "math"

// OrphanExpenses returns the expenses whose payer is not a participant.
func OrphanExpenses(trip TripForBalance) []ExpenseForBalance {
	known := make(map[string]struct{}, len(trip.Participants))
	for _, p := range trip.Participants {
		known[p.ID] = struct{}{}
	}
	var orphans []ExpenseForBalance
	for _, e := range trip.Expenses {
		if _, ok := known[e.PayerID]; !ok {
			orphans = append(orphans, e)
		}
	}
	return orphans
}

// BalanceSum adds up all balances. It is zero (within float error) for any
// trip without orphan expenses.
func BalanceSum(balances []ParticipantBalance) float64 {
	var sum float64
	for _, b := range balances {
		sum += b.Balance
	}
	return sum
}

// ApplySettlements returns a copy of balances with every settlement applied:
// the debtor's balance rises by the amount and the creditor's falls by it.
func ApplySettlements(balances []ParticipantBalance, settlements []Settlement) []ParticipantBalance {
	out := make([]ParticipantBalance, len(balances))
	copy(out, balances)
	index := make(map[string]int, len(out))
	for i, b := range out {
		index[b.ParticipantID] = i
	}
	for _, s := range settlements {
		if i, ok := index[s.From]; ok {
			out[i].Balance += s.Amount
		}
		if i, ok := index[s.To]; ok {
			out[i].Balance -= s.Amount
		}
	}
	return out
}

// Residual is the largest absolute balance left after applying settlements.
// Anything above Epsilon means the input did not sum to zero.
func Residual(balances []ParticipantBalance, settlements []Settlement) float64 {
	var worst float64
	for _, b := range ApplySettlements(balances, settlements) {
		worst = math.Max(worst, math.Abs(b.Balance))
	}
	return worst
}
