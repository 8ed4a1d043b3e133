package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mmynk/tripsplit/internal/auth"
	"github.com/mmynk/tripsplit/internal/invite"
	"github.com/mmynk/tripsplit/internal/metrics"
	"github.com/mmynk/tripsplit/internal/middleware"
	"github.com/mmynk/tripsplit/internal/storage/sqlite"
	v1 "github.com/mmynk/tripsplit/pkg/api/tripsplitv1"
	"github.com/mmynk/tripsplit/pkg/api/tripsplitv1/tripsplitv1connect"
)

const (
	testAdminPassword = "correct-horse"
	testJWTSecret     = "test-secret-at-least-16"
)

// recordingMailer keeps every invite instead of sending it.
type recordingMailer struct {
	sent []invite.Invite
	err  error
}

func (m *recordingMailer) SendInvite(_ context.Context, inv invite.Invite) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, inv)
	return nil
}

type testEnv struct {
	auth       tripsplitv1connect.AuthServiceClient
	trips      tripsplitv1connect.TripServiceClient
	adminToken string
	mailer     *recordingMailer
	registry   *prometheus.Registry
}

// setupTestServer starts both services on a temp-file SQLite database, wired
// with the real auth interceptors.
func setupTestServer(t *testing.T) *testEnv {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	jwtManager := auth.NewJWTManager(testJWTSecret, time.Hour)
	admin, err := auth.NewPasswordAuthenticator(testAdminPassword)
	if err != nil {
		t.Fatalf("failed to create password authenticator: %v", err)
	}
	invites, err := invite.NewBuilder("http://trips.example.com/")
	if err != nil {
		t.Fatalf("failed to create invite builder: %v", err)
	}
	mailer := &recordingMailer{}
	reg := prometheus.NewRegistry()

	authSvc := NewAuthService(admin, auth.NewInviteAuthenticator(store), jwtManager)
	tripSvc := NewTripService(store, TripServiceOptions{
		Invites:  invites,
		Mailer:   mailer,
		Metrics:  metrics.NewWithRegistry(reg, reg),
		Currency: "EUR",
	})

	authPath, authHandler := tripsplitv1connect.NewAuthServiceHandler(authSvc,
		connect.WithInterceptors(middleware.OptionalAuth(jwtManager)))
	tripPath, tripHandler := tripsplitv1connect.NewTripServiceHandler(tripSvc,
		connect.WithInterceptors(middleware.RequireAuth(jwtManager)))

	mux := http.NewServeMux()
	mux.Handle(authPath, authHandler)
	mux.Handle(tripPath, tripHandler)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	adminToken, err := jwtManager.Generate(auth.Admin{})
	if err != nil {
		t.Fatalf("failed to generate admin token: %v", err)
	}

	return &testEnv{
		auth:       tripsplitv1connect.NewAuthServiceClient(http.DefaultClient, server.URL),
		trips:      tripsplitv1connect.NewTripServiceClient(http.DefaultClient, server.URL),
		adminToken: adminToken,
		mailer:     mailer,
		registry:   reg,
	}
}

// withToken wraps msg in a request carrying token as bearer credential.
func withToken[T any](token string, msg *T) *connect.Request[T] {
	req := connect.NewRequest(msg)
	if token != "" {
		req.Header().Set("Authorization", "Bearer "+token)
	}
	return req
}

func (e *testEnv) createTrip(t *testing.T, title string) *v1.Trip {
	t.Helper()
	resp, err := e.trips.CreateTrip(context.Background(), withToken(e.adminToken, &v1.CreateTripRequest{
		Title:     title,
		StartDate: "2026-07-01",
		EndDate:   "2026-07-14",
	}))
	if err != nil {
		t.Fatalf("CreateTrip failed: %v", err)
	}
	return resp.Msg.Trip
}

func (e *testEnv) addParticipant(t *testing.T, tripID, name string, personCount int32) *v1.Participant {
	t.Helper()
	resp, err := e.trips.AddParticipant(context.Background(), withToken(e.adminToken, &v1.AddParticipantRequest{
		TripID:      tripID,
		Name:        name,
		Email:       name + "@example.com",
		PersonCount: personCount,
	}))
	if err != nil {
		t.Fatalf("AddParticipant(%s) failed: %v", name, err)
	}
	return resp.Msg.Participant
}

func (e *testEnv) addExpense(t *testing.T, token, tripID, payerID string, amount float64) *v1.Expense {
	t.Helper()
	resp, err := e.trips.AddExpense(context.Background(), withToken(token, &v1.AddExpenseRequest{
		TripID:  tripID,
		PayerID: payerID,
		Amount:  amount,
		Reason:  "Groceries",
		Date:    "2026-07-02",
	}))
	if err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}
	return resp.Msg.Expense
}

// guestToken logs p in through their invite token.
func (e *testEnv) guestToken(t *testing.T, tripID string, p *v1.Participant) string {
	t.Helper()
	resp, err := e.auth.GuestLogin(context.Background(), connect.NewRequest(&v1.GuestLoginRequest{
		TripID:      tripID,
		InviteToken: p.InviteToken,
	}))
	if err != nil {
		t.Fatalf("GuestLogin failed: %v", err)
	}
	return resp.Msg.Token
}

func assertCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %v, got nil", want)
	}
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		t.Fatalf("expected connect.Error, got %T: %v", err, err)
	}
	if connectErr.Code() != want {
		t.Errorf("expected code %v, got %v (%s)", want, connectErr.Code(), connectErr.Message())
	}
}
