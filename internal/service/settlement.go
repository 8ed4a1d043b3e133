package service

import (
	"context"
	"log/slog"
	"math"

	"connectrpc.com/connect"

	"github.com/mmynk/tripsplit/internal/calculator"
	"github.com/mmynk/tripsplit/internal/money"
	v1 "github.com/mmynk/tripsplit/pkg/api/tripsplitv1"
)

// GetSettlement computes every participant's balance and the transfers that
// settle the trip. Guests of the trip see the full plan.
func (s *TripService) GetSettlement(ctx context.Context, req *connect.Request[v1.GetSettlementRequest]) (*connect.Response[v1.GetSettlementResponse], error) {
	trip, _, err := s.viewTrip(ctx, "GetSettlement", req.Msg.TripID)
	if err != nil {
		return nil, err
	}

	in := forBalance(trip)
	balances := calculator.ComputeBalances(in)
	settlements := calculator.ResolveSettlements(balances)

	// Balances only fail to sum to zero when an expense has no payer among
	// the participants. Sub-cent debts are never collected, so a leftover of
	// a few cents on its own is expected.
	orphans := calculator.OrphanExpenses(in)
	residual := calculator.Residual(balances, settlements)
	balanced := math.Abs(calculator.BalanceSum(balances)) <= calculator.Epsilon
	switch {
	case !balanced:
		slog.Warn("Balances do not sum to zero, expenses without a participant",
			"trip_id", trip.ID,
			"orphan_expenses", len(orphans),
			"residual", residual,
		)
	case residual > calculator.Epsilon:
		slog.Debug("Sub-cent debts left unsettled", "trip_id", trip.ID, "residual", residual)
	}
	s.metrics.ObserveSettlement(len(settlements), balanced)

	names := make(map[string]string, len(trip.Participants))
	for _, p := range trip.Participants {
		names[p.ID] = p.Name
	}

	resp := &v1.GetSettlementResponse{
		Balances:          make([]*v1.ParticipantBalance, len(balances)),
		Settlements:       make([]*v1.Settlement, len(settlements)),
		TotalSpent:        money.Round(trip.TotalSpent()),
		TotalSpentDisplay: money.Format(trip.TotalSpent(), s.currency),
		Currency:          s.currency,
		OrphanExpenses:    int32(len(orphans)),
	}
	for i, b := range balances {
		resp.Balances[i] = balanceToAPI(b, s.currency)
	}
	for i, st := range settlements {
		resp.Settlements[i] = settlementToAPI(st, names, s.currency)
	}

	slog.Debug("Settlement computed", "trip_id", trip.ID, "transfers", len(settlements))
	return connect.NewResponse(resp), nil
}
