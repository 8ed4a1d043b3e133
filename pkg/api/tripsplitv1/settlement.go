package tripsplitv1

// ParticipantBalance carries raw amounts plus their rounded, formatted display strings.
type ParticipantBalance struct {
	ParticipantID      string  `json:"participant_id"`
	Name               string  `json:"name"`
	Paid               float64 `json:"paid"`
	TargetShare        float64 `json:"target_share"`
	Balance            float64 `json:"balance"`
	PaidDisplay        string  `json:"paid_display"`
	TargetShareDisplay string  `json:"target_share_display"`
	BalanceDisplay     string  `json:"balance_display"`
}

type Settlement struct {
	From          string  `json:"from"`
	FromName      string  `json:"from_name"`
	To            string  `json:"to"`
	ToName        string  `json:"to_name"`
	Amount        float64 `json:"amount"`
	AmountDisplay string  `json:"amount_display"`
}

type GetSettlementRequest struct {
	TripID string `json:"trip_id"`
}

type GetSettlementResponse struct {
	Balances          []*ParticipantBalance `json:"balances"`
	Settlements       []*Settlement         `json:"settlements"`
	TotalSpent        float64               `json:"total_spent"`
	TotalSpentDisplay string                `json:"total_spent_display"`
	Currency          string                `json:"currency"`
	// OrphanExpenses counts expenses whose payer is no longer a participant.
	// When non-zero the balances do not sum to zero.
	OrphanExpenses int32 `json:"orphan_expenses"`
}
