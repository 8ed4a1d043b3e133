package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"connectrpc.com/connect"
	"github.com/google/uuid"

	"github.com/mmynk/tripsplit/internal/auth"
	"github.com/mmynk/tripsplit/internal/invite"
	"github.com/mmynk/tripsplit/internal/metrics"
	"github.com/mmynk/tripsplit/internal/middleware"
	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/money"
	"github.com/mmynk/tripsplit/internal/notify"
	"github.com/mmynk/tripsplit/internal/storage"
	v1 "github.com/mmynk/tripsplit/pkg/api/tripsplitv1"
	"github.com/mmynk/tripsplit/pkg/api/tripsplitv1/tripsplitv1connect"
)

// TripServiceOptions configures a TripService.
type TripServiceOptions struct {
	// Invites builds guest links. Required for GetInviteLink.
	Invites *invite.Builder

	// Mailer sends invite e-mails. Defaults to notify.LogMailer.
	Mailer notify.Mailer

	// Metrics may be nil.
	Metrics *metrics.Metrics

	// Currency is appended to formatted amounts (e.g. "EUR").
	Currency string
}

// TripService implements the TripService RPC interface.
type TripService struct {
	tripsplitv1connect.UnimplementedTripServiceHandler

	store    storage.Store
	invites  *invite.Builder
	mailer   notify.Mailer
	metrics  *metrics.Metrics
	currency string
}

// NewTripService creates a new trip service backed by store.
func NewTripService(store storage.Store, opts TripServiceOptions) *TripService {
	mailer := opts.Mailer
	if mailer == nil {
		mailer = notify.LogMailer{}
	}
	return &TripService{
		store:    store,
		invites:  opts.Invites,
		mailer:   mailer,
		metrics:  opts.Metrics,
		currency: opts.Currency,
	}
}

// requireAdmin returns PermissionDenied unless the caller is the admin.
func requireAdmin(ctx context.Context) error {
	if !auth.CanManageTrips(middleware.GetRole(ctx)) {
		return permissionDenied(errAdminOnly)
	}
	return nil
}

// viewTrip loads a trip the caller is allowed to read. Access is checked
// before the lookup so guests cannot tell which other trip IDs exist.
func (s *TripService) viewTrip(ctx context.Context, op, tripID string) (*models.Trip, auth.Role, error) {
	role := middleware.GetRole(ctx)
	if !auth.CanViewTrip(role, tripID) {
		return nil, role, permissionDenied(errTripAccessDenied)
	}
	trip, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return nil, role, toConnectError(op, err, "trip_id", tripID)
	}
	return trip, role, nil
}

// updateTrip loads a trip, applies fn and saves the result.
func (s *TripService) updateTrip(ctx context.Context, op, tripID string, fn func(*models.Trip) error) (*models.Trip, error) {
	trip, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return nil, toConnectError(op, err, "trip_id", tripID)
	}
	if err := fn(trip); err != nil {
		return nil, toConnectError(op, err, "trip_id", tripID)
	}
	if err := s.store.SaveTrip(ctx, trip); err != nil {
		return nil, toConnectError(op, err, "trip_id", tripID)
	}
	return trip, nil
}

// ListTrips returns a summary of every trip.
func (s *TripService) ListTrips(ctx context.Context, _ *connect.Request[v1.ListTripsRequest]) (*connect.Response[v1.ListTripsResponse], error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	trips, err := s.store.ListTrips(ctx)
	if err != nil {
		return nil, toConnectError("ListTrips", err)
	}

	summaries := make([]*v1.TripSummary, len(trips))
	for i, trip := range trips {
		summaries[i] = tripSummaryToAPI(trip)
	}
	return connect.NewResponse(&v1.ListTripsResponse{Trips: summaries}), nil
}

// CreateTrip creates an empty trip.
func (s *TripService) CreateTrip(ctx context.Context, req *connect.Request[v1.CreateTripRequest]) (*connect.Response[v1.CreateTripResponse], error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	trip := &models.Trip{
		ID:           uuid.New().String(),
		Title:        strings.TrimSpace(req.Msg.Title),
		StartDate:    req.Msg.StartDate,
		EndDate:      req.Msg.EndDate,
		Participants: []models.Participant{},
		Expenses:     []models.Expense{},
	}
	if err := trip.Validate(); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	if err := s.store.CreateTrip(ctx, trip); err != nil {
		return nil, toConnectError("CreateTrip", err)
	}

	slog.Info("Trip created", "trip_id", trip.ID, "title", trip.Title)
	return connect.NewResponse(&v1.CreateTripResponse{Trip: tripToAPI(trip, auth.Admin{})}), nil
}

// GetTrip returns a trip as seen by the caller.
func (s *TripService) GetTrip(ctx context.Context, req *connect.Request[v1.GetTripRequest]) (*connect.Response[v1.GetTripResponse], error) {
	trip, role, err := s.viewTrip(ctx, "GetTrip", req.Msg.TripID)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&v1.GetTripResponse{Trip: tripToAPI(trip, role)}), nil
}

// DeleteTrip removes a trip with all its participants and expenses.
func (s *TripService) DeleteTrip(ctx context.Context, req *connect.Request[v1.DeleteTripRequest]) (*connect.Response[v1.DeleteTripResponse], error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	if err := s.store.DeleteTrip(ctx, req.Msg.TripID); err != nil {
		return nil, toConnectError("DeleteTrip", err, "trip_id", req.Msg.TripID)
	}

	slog.Info("Trip deleted", "trip_id", req.Msg.TripID)
	return connect.NewResponse(&v1.DeleteTripResponse{}), nil
}

// AddParticipant adds a participant and gives them an invite token.
func (s *TripService) AddParticipant(ctx context.Context, req *connect.Request[v1.AddParticipantRequest]) (*connect.Response[v1.AddParticipantResponse], error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	p := models.Participant{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(req.Msg.Name),
		Email:       strings.TrimSpace(req.Msg.Email),
		PersonCount: int(req.Msg.PersonCount),
	}
	if err := p.Validate(); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	token, err := auth.NewInviteToken()
	if err != nil {
		return nil, toConnectError("AddParticipant", err)
	}
	p.InviteToken = token

	_, err = s.updateTrip(ctx, "AddParticipant", req.Msg.TripID, func(trip *models.Trip) error {
		trip.Participants = append(trip.Participants, p)
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Participant added", "trip_id", req.Msg.TripID, "participant_id", p.ID, "person_count", p.PersonCount)
	return connect.NewResponse(&v1.AddParticipantResponse{Participant: participantToAPI(&p, auth.Admin{})}), nil
}

// UpdateParticipantWeight changes how many persons a participant accounts for.
func (s *TripService) UpdateParticipantWeight(ctx context.Context, req *connect.Request[v1.UpdateParticipantWeightRequest]) (*connect.Response[v1.UpdateParticipantWeightResponse], error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if req.Msg.PersonCount < 1 {
		return nil, connect.NewError(connect.CodeInvalidArgument, models.ErrInvalidWeight)
	}

	var updated models.Participant
	_, err := s.updateTrip(ctx, "UpdateParticipantWeight", req.Msg.TripID, func(trip *models.Trip) error {
		p, ok := trip.FindParticipant(req.Msg.ParticipantID)
		if !ok {
			return errParticipantNotFound(req.Msg.ParticipantID)
		}
		p.PersonCount = int(req.Msg.PersonCount)
		updated = *p
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Participant weight updated", "trip_id", req.Msg.TripID, "participant_id", updated.ID, "person_count", updated.PersonCount)
	return connect.NewResponse(&v1.UpdateParticipantWeightResponse{Participant: participantToAPI(&updated, auth.Admin{})}), nil
}

// RemoveParticipant removes a participant who has no expenses. Removing a
// payer would leave orphan expenses behind.
func (s *TripService) RemoveParticipant(ctx context.Context, req *connect.Request[v1.RemoveParticipantRequest]) (*connect.Response[v1.RemoveParticipantResponse], error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	_, err := s.updateTrip(ctx, "RemoveParticipant", req.Msg.TripID, func(trip *models.Trip) error {
		if _, ok := trip.FindParticipant(req.Msg.ParticipantID); !ok {
			return errParticipantNotFound(req.Msg.ParticipantID)
		}
		if len(trip.ExpensesPaidBy(req.Msg.ParticipantID)) > 0 {
			return connect.NewError(connect.CodeFailedPrecondition, errHasExpenses)
		}
		trip.Participants = slices.DeleteFunc(trip.Participants, func(p models.Participant) bool {
			return p.ID == req.Msg.ParticipantID
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Participant removed", "trip_id", req.Msg.TripID, "participant_id", req.Msg.ParticipantID)
	return connect.NewResponse(&v1.RemoveParticipantResponse{}), nil
}

// AddExpense records a payment. Guests may only record their own.
func (s *TripService) AddExpense(ctx context.Context, req *connect.Request[v1.AddExpenseRequest]) (*connect.Response[v1.AddExpenseResponse], error) {
	role := middleware.GetRole(ctx)
	if !auth.CanViewTrip(role, req.Msg.TripID) {
		return nil, permissionDenied(errTripAccessDenied)
	}
	if !auth.CanAddExpense(role, req.Msg.TripID, req.Msg.PayerID) {
		return nil, permissionDenied(errNotOwnExpense)
	}

	amount := req.Msg.Amount
	if text := strings.TrimSpace(req.Msg.AmountText); text != "" {
		parsed, err := money.Parse(text)
		if err != nil {
			return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("%w: %q", models.ErrInvalidAmount, text))
		}
		amount = parsed
	}

	e := models.Expense{
		ID:      uuid.New().String(),
		PayerID: req.Msg.PayerID,
		Amount:  amount,
		Reason:  strings.TrimSpace(req.Msg.Reason),
		Date:    req.Msg.Date,
	}

	trip, err := s.updateTrip(ctx, "AddExpense", req.Msg.TripID, func(trip *models.Trip) error {
		if err := e.Validate(trip); err != nil {
			return err
		}
		trip.Expenses = append(trip.Expenses, e)
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Expense added",
		"trip_id", req.Msg.TripID,
		"expense_id", e.ID,
		"payer_id", e.PayerID,
		"amount", e.Amount,
		"role", role.Kind(),
	)
	return connect.NewResponse(&v1.AddExpenseResponse{Expense: expenseToAPI(trip, &e)}), nil
}

// RemoveExpense deletes an expense.
func (s *TripService) RemoveExpense(ctx context.Context, req *connect.Request[v1.RemoveExpenseRequest]) (*connect.Response[v1.RemoveExpenseResponse], error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	_, err := s.updateTrip(ctx, "RemoveExpense", req.Msg.TripID, func(trip *models.Trip) error {
		before := len(trip.Expenses)
		trip.Expenses = slices.DeleteFunc(trip.Expenses, func(e models.Expense) bool {
			return e.ID == req.Msg.ExpenseID
		})
		if len(trip.Expenses) == before {
			return errExpenseNotFound(req.Msg.ExpenseID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Expense removed", "trip_id", req.Msg.TripID, "expense_id", req.Msg.ExpenseID)
	return connect.NewResponse(&v1.RemoveExpenseResponse{}), nil
}
