package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"math"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/mmynk/tripsplit/internal/auth"
	"github.com/mmynk/tripsplit/internal/invite"
	"github.com/mmynk/tripsplit/internal/middleware"
	"github.com/mmynk/tripsplit/internal/storage/sqlite"
	v1 "github.com/mmynk/tripsplit/pkg/api/tripsplitv1"
)

func TestTripService_RequiresToken(t *testing.T) {
	env := setupTestServer(t)

	_, err := env.trips.ListTrips(context.Background(), connect.NewRequest(&v1.ListTripsRequest{}))
	assertCode(t, err, connect.CodeUnauthenticated)

	_, err = env.trips.ListTrips(context.Background(), withToken("garbage", &v1.ListTripsRequest{}))
	assertCode(t, err, connect.CodeUnauthenticated)
}

func TestCreateTrip(t *testing.T) {
	env := setupTestServer(t)

	trip := env.createTrip(t, "  Lake Garda  ")

	if trip.ID == "" {
		t.Error("expected non-empty trip ID")
	}
	if trip.Title != "Lake Garda" {
		t.Errorf("title: expected 'Lake Garda', got '%s'", trip.Title)
	}
	if trip.StartDate != "2026-07-01" || trip.EndDate != "2026-07-14" {
		t.Errorf("dates: got %s..%s", trip.StartDate, trip.EndDate)
	}
	if len(trip.Participants) != 0 || len(trip.Expenses) != 0 {
		t.Errorf("expected empty trip, got %d participants, %d expenses", len(trip.Participants), len(trip.Expenses))
	}
	if trip.CreatedAt == 0 {
		t.Error("expected CreatedAt to be set")
	}
}

func TestCreateTrip_Invalid(t *testing.T) {
	env := setupTestServer(t)

	tests := []struct {
		name string
		req  *v1.CreateTripRequest
	}{
		{"empty title", &v1.CreateTripRequest{Title: " ", StartDate: "2026-07-01", EndDate: "2026-07-02"}},
		{"bad start date", &v1.CreateTripRequest{Title: "Trip", StartDate: "01.07.2026", EndDate: "2026-07-02"}},
		{"end before start", &v1.CreateTripRequest{Title: "Trip", StartDate: "2026-07-10", EndDate: "2026-07-02"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.trips.CreateTrip(context.Background(), withToken(env.adminToken, tt.req))
			assertCode(t, err, connect.CodeInvalidArgument)
		})
	}
}

func TestListTrips(t *testing.T) {
	env := setupTestServer(t)

	resp, err := env.trips.ListTrips(context.Background(), withToken(env.adminToken, &v1.ListTripsRequest{}))
	if err != nil {
		t.Fatalf("ListTrips failed: %v", err)
	}
	if len(resp.Msg.Trips) != 0 {
		t.Errorf("expected no trips, got %d", len(resp.Msg.Trips))
	}

	trip := env.createTrip(t, "Lake Garda")
	anna := env.addParticipant(t, trip.ID, "Anna", 1)
	env.addParticipant(t, trip.ID, "Ben", 2)
	env.addExpense(t, env.adminToken, trip.ID, anna.ID, 120.5)
	env.createTrip(t, "Dolomites")

	resp, err = env.trips.ListTrips(context.Background(), withToken(env.adminToken, &v1.ListTripsRequest{}))
	if err != nil {
		t.Fatalf("ListTrips failed: %v", err)
	}
	if len(resp.Msg.Trips) != 2 {
		t.Fatalf("expected 2 trips, got %d", len(resp.Msg.Trips))
	}

	var garda *v1.TripSummary
	for _, s := range resp.Msg.Trips {
		if s.ID == trip.ID {
			garda = s
		}
	}
	if garda == nil {
		t.Fatal("created trip missing from list")
	}
	if garda.ParticipantCount != 2 || garda.ExpenseCount != 1 {
		t.Errorf("counts: expected 2 participants and 1 expense, got %d and %d", garda.ParticipantCount, garda.ExpenseCount)
	}
	if garda.TotalSpent != 120.5 {
		t.Errorf("total spent: expected 120.5, got %v", garda.TotalSpent)
	}
}

func TestListTrips_GuestDenied(t *testing.T) {
	env := setupTestServer(t)
	trip := env.createTrip(t, "Lake Garda")
	anna := env.addParticipant(t, trip.ID, "Anna", 1)
	guest := env.guestToken(t, trip.ID, anna)

	_, err := env.trips.ListTrips(context.Background(), withToken(guest, &v1.ListTripsRequest{}))
	assertCode(t, err, connect.CodePermissionDenied)
}

func TestGetTrip_NotFound(t *testing.T) {
	env := setupTestServer(t)

	_, err := env.trips.GetTrip(context.Background(), withToken(env.adminToken, &v1.GetTripRequest{
		TripID: "nonexistent-id",
	}))
	assertCode(t, err, connect.CodeNotFound)
}

func TestGetTrip_AdminView(t *testing.T) {
	env := setupTestServer(t)
	trip := env.createTrip(t, "Lake Garda")
	anna := env.addParticipant(t, trip.ID, "Anna", 1)
	ben := env.addParticipant(t, trip.ID, "Ben", 1)
	env.addExpense(t, env.adminToken, trip.ID, anna.ID, 60)
	env.addExpense(t, env.adminToken, trip.ID, ben.ID, 40)

	resp, err := env.trips.GetTrip(context.Background(), withToken(env.adminToken, &v1.GetTripRequest{TripID: trip.ID}))
	if err != nil {
		t.Fatalf("GetTrip failed: %v", err)
	}
	got := resp.Msg.Trip

	if len(got.Participants) != 2 || got.Participants[0].Name != "Anna" || got.Participants[1].Name != "Ben" {
		t.Fatalf("participants out of order: %+v", got.Participants)
	}
	for _, p := range got.Participants {
		if p.InviteToken == "" || p.Email == "" {
			t.Errorf("admin should see token and e-mail of %s", p.Name)
		}
	}
	if len(got.Expenses) != 2 {
		t.Fatalf("expected 2 expenses, got %d", len(got.Expenses))
	}
	if got.Expenses[0].PayerName != "Anna" {
		t.Errorf("payer name: expected 'Anna', got '%s'", got.Expenses[0].PayerName)
	}
	if got.TotalSpent != 100 {
		t.Errorf("total spent: expected 100, got %v", got.TotalSpent)
	}
}

func TestGetTrip_GuestView(t *testing.T) {
	env := setupTestServer(t)
	trip := env.createTrip(t, "Lake Garda")
	anna := env.addParticipant(t, trip.ID, "Anna", 1)
	ben := env.addParticipant(t, trip.ID, "Ben", 1)
	env.addExpense(t, env.adminToken, trip.ID, anna.ID, 60)
	env.addExpense(t, env.adminToken, trip.ID, ben.ID, 40)
	guest := env.guestToken(t, trip.ID, anna)

	resp, err := env.trips.GetTrip(context.Background(), withToken(guest, &v1.GetTripRequest{TripID: trip.ID}))
	if err != nil {
		t.Fatalf("GetTrip failed: %v", err)
	}
	got := resp.Msg.Trip

	if len(got.Expenses) != 1 || got.Expenses[0].PayerID != anna.ID {
		t.Errorf("guest should only see own expenses, got %+v", got.Expenses)
	}
	if got.TotalSpent != 100 {
		t.Errorf("total spent covers the whole trip: expected 100, got %v", got.TotalSpent)
	}
	for _, p := range got.Participants {
		if p.InviteToken != "" {
			t.Errorf("guest must not see invite token of %s", p.Name)
		}
		if p.ID == ben.ID && p.Email != "" {
			t.Errorf("guest must not see e-mail of %s", p.Name)
		}
		if p.ID == anna.ID && p.Email == "" {
			t.Error("guest should see own e-mail")
		}
	}

	other := env.createTrip(t, "Dolomites")
	_, err = env.trips.GetTrip(context.Background(), withToken(guest, &v1.GetTripRequest{TripID: other.ID}))
	assertCode(t, err, connect.CodePermissionDenied)
}

func TestDeleteTrip(t *testing.T) {
	env := setupTestServer(t)
	trip := env.createTrip(t, "Lake Garda")
	anna := env.addParticipant(t, trip.ID, "Anna", 1)
	env.addExpense(t, env.adminToken, trip.ID, anna.ID, 10)

	_, err := env.trips.DeleteTrip(context.Background(), withToken(env.adminToken, &v1.DeleteTripRequest{TripID: trip.ID}))
	if err != nil {
		t.Fatalf("DeleteTrip failed: %v", err)
	}

	_, err = env.trips.GetTrip(context.Background(), withToken(env.adminToken, &v1.GetTripRequest{TripID: trip.ID}))
	assertCode(t, err, connect.CodeNotFound)

	_, err = env.trips.DeleteTrip(context.Background(), withToken(env.adminToken, &v1.DeleteTripRequest{TripID: trip.ID}))
	assertCode(t, err, connect.CodeNotFound)
}

func TestAddParticipant_InvalidWeight(t *testing.T) {
	env := setupTestServer(t)
	trip := env.createTrip(t, "Lake Garda")

	for _, count := range []int32{0, -2} {
		_, err := env.trips.AddParticipant(context.Background(), withToken(env.adminToken, &v1.AddParticipantRequest{
			TripID:      trip.ID,
			Name:        "Anna",
			PersonCount: count,
		}))
		assertCode(t, err, connect.CodeInvalidArgument)
	}

	_, err := env.trips.AddParticipant(context.Background(), withToken(env.adminToken, &v1.AddParticipantRequest{
		TripID:      trip.ID,
		Name:        "",
		PersonCount: 1,
	}))
	assertCode(t, err, connect.CodeInvalidArgument)
}

func TestAddParticipant_UnknownTrip(t *testing.T) {
	env := setupTestServer(t)

	_, err := env.trips.AddParticipant(context.Background(), withToken(env.adminToken, &v1.AddParticipantRequest{
		TripID:      "missing",
		Name:        "Anna",
		PersonCount: 1,
	}))
	assertCode(t, err, connect.CodeNotFound)
}

func TestUpdateParticipantWeight(t *testing.T) {
	env := setupTestServer(t)
	trip := env.createTrip(t, "Lake Garda")
	anna := env.addParticipant(t, trip.ID, "Anna", 1)

	resp, err := env.trips.UpdateParticipantWeight(context.Background(), withToken(env.adminToken, &v1.UpdateParticipantWeightRequest{
		TripID:        trip.ID,
		ParticipantID: anna.ID,
		PersonCount:   4,
	}))
	if err != nil {
		t.Fatalf("UpdateParticipantWeight failed: %v", err)
	}
	if resp.Msg.Participant.PersonCount != 4 {
		t.Errorf("person count: expected 4, got %d", resp.Msg.Participant.PersonCount)
	}

	_, err = env.trips.UpdateParticipantWeight(context.Background(), withToken(env.adminToken, &v1.UpdateParticipantWeightRequest{
		TripID:        trip.ID,
		ParticipantID: anna.ID,
		PersonCount:   0,
	}))
	assertCode(t, err, connect.CodeInvalidArgument)

	_, err = env.trips.UpdateParticipantWeight(context.Background(), withToken(env.adminToken, &v1.UpdateParticipantWeightRequest{
		TripID:        trip.ID,
		ParticipantID: "missing",
		PersonCount:   2,
	}))
	assertCode(t, err, connect.CodeNotFound)
}

func TestRemoveParticipant(t *testing.T) {
	env := setupTestServer(t)
	trip := env.createTrip(t, "Lake Garda")
	anna := env.addParticipant(t, trip.ID, "Anna", 1)
	ben := env.addParticipant(t, trip.ID, "Ben", 1)
	env.addExpense(t, env.adminToken, trip.ID, anna.ID, 30)

	_, err := env.trips.RemoveParticipant(context.Background(), withToken(env.adminToken, &v1.RemoveParticipantRequest{
		TripID:        trip.ID,
		ParticipantID: anna.ID,
	}))
	assertCode(t, err, connect.CodeFailedPrecondition)

	_, err = env.trips.RemoveParticipant(context.Background(), withToken(env.adminToken, &v1.RemoveParticipantRequest{
		TripID:        trip.ID,
		ParticipantID: ben.ID,
	}))
	if err != nil {
		t.Fatalf("RemoveParticipant failed: %v", err)
	}

	resp, err := env.trips.GetTrip(context.Background(), withToken(env.adminToken, &v1.GetTripRequest{TripID: trip.ID}))
	if err != nil {
		t.Fatalf("GetTrip failed: %v", err)
	}
	if len(resp.Msg.Trip.Participants) != 1 || resp.Msg.Trip.Participants[0].ID != anna.ID {
		t.Errorf("expected only Anna to remain, got %+v", resp.Msg.Trip.Participants)
	}
}

func TestAddExpense_Validation(t *testing.T) {
	env := setupTestServer(t)
	trip := env.createTrip(t, "Lake Garda")
	anna := env.addParticipant(t, trip.ID, "Anna", 1)

	tests := []struct {
		name string
		req  *v1.AddExpenseRequest
	}{
		{"zero amount", &v1.AddExpenseRequest{TripID: trip.ID, PayerID: anna.ID, Amount: 0, Reason: "Fuel", Date: "2026-07-02"}},
		{"negative amount", &v1.AddExpenseRequest{TripID: trip.ID, PayerID: anna.ID, Amount: -5, Reason: "Fuel", Date: "2026-07-02"}},
		{"empty reason", &v1.AddExpenseRequest{TripID: trip.ID, PayerID: anna.ID, Amount: 5, Reason: "  ", Date: "2026-07-02"}},
		{"missing date", &v1.AddExpenseRequest{TripID: trip.ID, PayerID: anna.ID, Amount: 5, Reason: "Fuel"}},
		{"unknown payer", &v1.AddExpenseRequest{TripID: trip.ID, PayerID: "ghost", Amount: 5, Reason: "Fuel", Date: "2026-07-02"}},
		{"unparsable amount text", &v1.AddExpenseRequest{TripID: trip.ID, PayerID: anna.ID, AmountText: "12.x", Reason: "Fuel", Date: "2026-07-02"}},
		{"zero amount text", &v1.AddExpenseRequest{TripID: trip.ID, PayerID: anna.ID, AmountText: "0,00", Reason: "Fuel", Date: "2026-07-02"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.trips.AddExpense(context.Background(), withToken(env.adminToken, tt.req))
			assertCode(t, err, connect.CodeInvalidArgument)
		})
	}
}

func TestAddExpense_AmountText(t *testing.T) {
	env := setupTestServer(t)
	trip := env.createTrip(t, "Lake Garda")
	anna := env.addParticipant(t, trip.ID, "Anna", 1)

	resp, err := env.trips.AddExpense(context.Background(), withToken(env.adminToken, &v1.AddExpenseRequest{
		TripID:     trip.ID,
		PayerID:    anna.ID,
		Amount:     99,
		AmountText: " 12,50 ",
		Reason:     "Ice cream",
		Date:       "2026-07-02",
	}))
	if err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}
	if resp.Msg.Expense.Amount != 12.5 {
		t.Errorf("amount: expected 12.5, got %v", resp.Msg.Expense.Amount)
	}
}

func TestAddExpense_GuestPermissions(t *testing.T) {
	env := setupTestServer(t)
	trip := env.createTrip(t, "Lake Garda")
	anna := env.addParticipant(t, trip.ID, "Anna", 1)
	ben := env.addParticipant(t, trip.ID, "Ben", 1)
	guest := env.guestToken(t, trip.ID, anna)

	// Own expense is fine.
	e := env.addExpense(t, guest, trip.ID, anna.ID, 42)
	if e.PayerID != anna.ID || e.PayerName != "Anna" {
		t.Errorf("unexpected expense: %+v", e)
	}

	// Paying on behalf of someone else is not.
	_, err := env.trips.AddExpense(context.Background(), withToken(guest, &v1.AddExpenseRequest{
		TripID:  trip.ID,
		PayerID: ben.ID,
		Amount:  10,
		Reason:  "Coffee",
		Date:    "2026-07-03",
	}))
	assertCode(t, err, connect.CodePermissionDenied)

	// Nor is another trip.
	other := env.createTrip(t, "Dolomites")
	_, err = env.trips.AddExpense(context.Background(), withToken(guest, &v1.AddExpenseRequest{
		TripID:  other.ID,
		PayerID: anna.ID,
		Amount:  10,
		Reason:  "Coffee",
		Date:    "2026-07-03",
	}))
	assertCode(t, err, connect.CodePermissionDenied)
}

func TestRemoveExpense(t *testing.T) {
	env := setupTestServer(t)
	trip := env.createTrip(t, "Lake Garda")
	anna := env.addParticipant(t, trip.ID, "Anna", 1)
	e := env.addExpense(t, env.adminToken, trip.ID, anna.ID, 25)
	guest := env.guestToken(t, trip.ID, anna)

	_, err := env.trips.RemoveExpense(context.Background(), withToken(guest, &v1.RemoveExpenseRequest{TripID: trip.ID, ExpenseID: e.ID}))
	assertCode(t, err, connect.CodePermissionDenied)

	_, err = env.trips.RemoveExpense(context.Background(), withToken(env.adminToken, &v1.RemoveExpenseRequest{TripID: trip.ID, ExpenseID: e.ID}))
	if err != nil {
		t.Fatalf("RemoveExpense failed: %v", err)
	}

	_, err = env.trips.RemoveExpense(context.Background(), withToken(env.adminToken, &v1.RemoveExpenseRequest{TripID: trip.ID, ExpenseID: e.ID}))
	assertCode(t, err, connect.CodeNotFound)
}

func TestGetSettlement(t *testing.T) {
	env := setupTestServer(t)
	trip := env.createTrip(t, "Lake Garda")
	anna := env.addParticipant(t, trip.ID, "Anna", 1)
	ben := env.addParticipant(t, trip.ID, "Ben", 1)
	weber := env.addParticipant(t, trip.ID, "Family Weber", 2)
	env.addExpense(t, env.adminToken, trip.ID, weber.ID, 200)
	guest := env.guestToken(t, trip.ID, ben)

	// Guests of the trip see the same plan as the admin.
	for _, token := range []string{env.adminToken, guest} {
		resp, err := env.trips.GetSettlement(context.Background(), withToken(token, &v1.GetSettlementRequest{TripID: trip.ID}))
		if err != nil {
			t.Fatalf("GetSettlement failed: %v", err)
		}
		msg := resp.Msg

		if msg.Currency != "EUR" || msg.TotalSpentDisplay != "200.00 EUR" {
			t.Errorf("total: got %q in %q", msg.TotalSpentDisplay, msg.Currency)
		}
		if msg.OrphanExpenses != 0 {
			t.Errorf("expected no orphan expenses, got %d", msg.OrphanExpenses)
		}

		wantBalances := map[string]float64{anna.ID: -50, ben.ID: -50, weber.ID: 100}
		if len(msg.Balances) != 3 {
			t.Fatalf("expected 3 balances, got %d", len(msg.Balances))
		}
		for _, b := range msg.Balances {
			if math.Abs(b.Balance-wantBalances[b.ParticipantID]) > 1e-9 {
				t.Errorf("balance of %s: expected %v, got %v", b.Name, wantBalances[b.ParticipantID], b.Balance)
			}
		}
		if msg.Balances[2].BalanceDisplay != "100.00 EUR" || msg.Balances[0].BalanceDisplay != "-50.00 EUR" {
			t.Errorf("display: got %q and %q", msg.Balances[0].BalanceDisplay, msg.Balances[2].BalanceDisplay)
		}

		if len(msg.Settlements) != 2 {
			t.Fatalf("expected 2 settlements, got %+v", msg.Settlements)
		}
		// Ties keep participant order.
		first, second := msg.Settlements[0], msg.Settlements[1]
		if first.From != anna.ID || first.To != weber.ID || first.Amount != 50 {
			t.Errorf("first settlement: got %+v", first)
		}
		if second.From != ben.ID || second.To != weber.ID || second.Amount != 50 {
			t.Errorf("second settlement: got %+v", second)
		}
		if first.FromName != "Anna" || first.ToName != "Family Weber" || first.AmountDisplay != "50.00 EUR" {
			t.Errorf("first settlement names: got %+v", first)
		}
	}
}

func TestGetSettlement_SubCentDebts(t *testing.T) {
	env := setupTestServer(t)
	trip := env.createTrip(t, "Lake Garda")
	anna := env.addParticipant(t, trip.ID, "Anna", 1)
	for _, name := range []string{"Ben", "Carla", "Dan"} {
		env.addParticipant(t, trip.ID, name, 1)
	}
	env.addExpense(t, env.adminToken, trip.ID, anna.ID, 0.04)

	resp, err := env.trips.GetSettlement(context.Background(), withToken(env.adminToken, &v1.GetSettlementRequest{TripID: trip.ID}))
	if err != nil {
		t.Fatalf("GetSettlement failed: %v", err)
	}
	// Each guest owes exactly one cent, which is not collected.
	if len(resp.Msg.Settlements) != 0 {
		t.Errorf("expected no settlements, got %+v", resp.Msg.Settlements)
	}
	if resp.Msg.OrphanExpenses != 0 {
		t.Errorf("expected no orphan expenses, got %d", resp.Msg.OrphanExpenses)
	}

	expected := `
# HELP tripsplit_unbalanced_settlements_total Settlement plans whose balances did not sum to zero.
# TYPE tripsplit_unbalanced_settlements_total counter
tripsplit_unbalanced_settlements_total 0
`
	if err := testutil.GatherAndCompare(env.registry, strings.NewReader(expected), "tripsplit_unbalanced_settlements_total"); err != nil {
		t.Error(err)
	}
}

func TestGetSettlement_NoExpenses(t *testing.T) {
	env := setupTestServer(t)
	trip := env.createTrip(t, "Lake Garda")
	env.addParticipant(t, trip.ID, "Anna", 1)
	env.addParticipant(t, trip.ID, "Ben", 3)

	resp, err := env.trips.GetSettlement(context.Background(), withToken(env.adminToken, &v1.GetSettlementRequest{TripID: trip.ID}))
	if err != nil {
		t.Fatalf("GetSettlement failed: %v", err)
	}
	if len(resp.Msg.Settlements) != 0 {
		t.Errorf("expected no settlements, got %+v", resp.Msg.Settlements)
	}
	for _, b := range resp.Msg.Balances {
		if b.Balance != 0 || b.BalanceDisplay != "0.00 EUR" {
			t.Errorf("expected zero balance for %s, got %v (%s)", b.Name, b.Balance, b.BalanceDisplay)
		}
	}
}

func TestGetInviteLink(t *testing.T) {
	env := setupTestServer(t)
	trip := env.createTrip(t, "Lake Garda")
	anna := env.addParticipant(t, trip.ID, "Anna", 1)

	resp, err := env.trips.GetInviteLink(context.Background(), withToken(env.adminToken, &v1.GetInviteLinkRequest{
		TripID:        trip.ID,
		ParticipantID: anna.ID,
	}))
	if err != nil {
		t.Fatalf("GetInviteLink failed: %v", err)
	}

	link, err := url.Parse(resp.Msg.Link)
	if err != nil {
		t.Fatalf("invalid link %q: %v", resp.Msg.Link, err)
	}
	if link.Host != "trips.example.com" {
		t.Errorf("host: expected trips.example.com, got %s", link.Host)
	}
	if link.Query().Get("tripId") != trip.ID || link.Query().Get("token") != anna.InviteToken {
		t.Errorf("link does not carry trip and token: %s", resp.Msg.Link)
	}
	if !strings.HasPrefix(resp.Msg.MailtoURL, "mailto:Anna@example.com?") {
		t.Errorf("unexpected mailto URL: %s", resp.Msg.MailtoURL)
	}
	if resp.Msg.EmailSent || len(env.mailer.sent) != 0 {
		t.Error("no e-mail should be sent unless requested")
	}
}

func TestGetInviteLink_SendEmail(t *testing.T) {
	env := setupTestServer(t)
	trip := env.createTrip(t, "Lake Garda")
	anna := env.addParticipant(t, trip.ID, "Anna", 1)

	resp, err := env.trips.GetInviteLink(context.Background(), withToken(env.adminToken, &v1.GetInviteLinkRequest{
		TripID:        trip.ID,
		ParticipantID: anna.ID,
		SendEmail:     true,
	}))
	if err != nil {
		t.Fatalf("GetInviteLink failed: %v", err)
	}
	if !resp.Msg.EmailSent {
		t.Error("expected email_sent")
	}
	if len(env.mailer.sent) != 1 {
		t.Fatalf("expected 1 e-mail, got %d", len(env.mailer.sent))
	}
	sent := env.mailer.sent[0]
	if sent.To != "Anna@example.com" || sent.TripTitle != "Lake Garda" || sent.Link != resp.Msg.Link {
		t.Errorf("unexpected invite: %+v", sent)
	}

	env.mailer.err = errors.New("connection refused")
	_, err = env.trips.GetInviteLink(context.Background(), withToken(env.adminToken, &v1.GetInviteLinkRequest{
		TripID:        trip.ID,
		ParticipantID: anna.ID,
		SendEmail:     true,
	}))
	assertCode(t, err, connect.CodeUnavailable)
}

func TestGetInviteLink_Errors(t *testing.T) {
	env := setupTestServer(t)
	trip := env.createTrip(t, "Lake Garda")
	anna := env.addParticipant(t, trip.ID, "Anna", 1)
	noMail, err := env.trips.AddParticipant(context.Background(), withToken(env.adminToken, &v1.AddParticipantRequest{
		TripID:      trip.ID,
		Name:        "Ben",
		PersonCount: 1,
	}))
	if err != nil {
		t.Fatalf("AddParticipant failed: %v", err)
	}
	guest := env.guestToken(t, trip.ID, anna)

	_, err = env.trips.GetInviteLink(context.Background(), withToken(guest, &v1.GetInviteLinkRequest{
		TripID:        trip.ID,
		ParticipantID: anna.ID,
	}))
	assertCode(t, err, connect.CodePermissionDenied)

	_, err = env.trips.GetInviteLink(context.Background(), withToken(env.adminToken, &v1.GetInviteLinkRequest{
		TripID:        trip.ID,
		ParticipantID: "missing",
	}))
	assertCode(t, err, connect.CodeNotFound)

	_, err = env.trips.GetInviteLink(context.Background(), withToken(env.adminToken, &v1.GetInviteLinkRequest{
		TripID:        trip.ID,
		ParticipantID: noMail.Msg.Participant.ID,
		SendEmail:     true,
	}))
	assertCode(t, err, connect.CodeFailedPrecondition)
}

func TestGetInviteLink_NoMailer(t *testing.T) {
	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	invites, err := invite.NewBuilder("http://trips.example.com/")
	if err != nil {
		t.Fatalf("failed to create invite builder: %v", err)
	}

	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	svc := NewTripService(store, TripServiceOptions{Invites: invites})
	ctx := middleware.WithRole(context.Background(), auth.Admin{})

	trip, err := svc.CreateTrip(ctx, connect.NewRequest(&v1.CreateTripRequest{Title: "Lake Garda"}))
	if err != nil {
		t.Fatalf("CreateTrip failed: %v", err)
	}
	anna, err := svc.AddParticipant(ctx, connect.NewRequest(&v1.AddParticipantRequest{
		TripID:      trip.Msg.Trip.ID,
		Name:        "Anna",
		Email:       "anna@example.com",
		PersonCount: 1,
	}))
	if err != nil {
		t.Fatalf("AddParticipant failed: %v", err)
	}

	resp, err := svc.GetInviteLink(ctx, connect.NewRequest(&v1.GetInviteLinkRequest{
		TripID:        trip.Msg.Trip.ID,
		ParticipantID: anna.Msg.Participant.ID,
		SendEmail:     true,
	}))
	assertCode(t, err, connect.CodeFailedPrecondition)
	if resp != nil {
		t.Errorf("expected no response, got email_sent=%v", resp.Msg.EmailSent)
	}

	out := buf.String()
	if strings.Contains(out, anna.Msg.Participant.InviteToken) {
		t.Errorf("invite token leaked into the log: %s", out)
	}
	if strings.Contains(out, "Invite e-mail sent") {
		t.Errorf("unsent invite logged as sent: %s", out)
	}

	// Without send_email the link is still available for copy and mailto.
	resp, err = svc.GetInviteLink(ctx, connect.NewRequest(&v1.GetInviteLinkRequest{
		TripID:        trip.Msg.Trip.ID,
		ParticipantID: anna.Msg.Participant.ID,
	}))
	if err != nil {
		t.Fatalf("GetInviteLink failed: %v", err)
	}
	if resp.Msg.EmailSent || resp.Msg.Link == "" {
		t.Errorf("unexpected response: %+v", resp.Msg)
	}
}
