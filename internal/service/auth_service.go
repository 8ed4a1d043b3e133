package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/tripsplit/internal/auth"
	"github.com/mmynk/tripsplit/internal/middleware"
	v1 "github.com/mmynk/tripsplit/pkg/api/tripsplitv1"
	"github.com/mmynk/tripsplit/pkg/api/tripsplitv1/tripsplitv1connect"
)

// AuthService implements the AuthService RPC interface.
type AuthService struct {
	tripsplitv1connect.UnimplementedAuthServiceHandler

	admin      auth.Authenticator[string]
	guests     auth.Authenticator[auth.InviteCredential]
	jwtManager *auth.JWTManager
}

// NewAuthService creates the login service. admin checks the admin password,
// guests resolves invite tokens.
func NewAuthService(admin auth.Authenticator[string], guests auth.Authenticator[auth.InviteCredential], jwtManager *auth.JWTManager) *AuthService {
	return &AuthService{
		admin:      admin,
		guests:     guests,
		jwtManager: jwtManager,
	}
}

// AdminLogin exchanges the admin password for a token.
func (s *AuthService) AdminLogin(ctx context.Context, req *connect.Request[v1.AdminLoginRequest]) (*connect.Response[v1.AdminLoginResponse], error) {
	role, err := s.admin.Authenticate(ctx, req.Msg.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			slog.Warn("Admin login rejected")
			return nil, connect.NewError(connect.CodeUnauthenticated, err)
		}
		slog.Error("Admin login failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	token, err := s.jwtManager.Generate(role)
	if err != nil {
		slog.Error("Failed to generate token", "role", role.Kind(), "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("Admin logged in")
	return connect.NewResponse(&v1.AdminLoginResponse{
		Token: token,
		Role:  string(role.Kind()),
	}), nil
}

// GuestLogin exchanges an invite token for a token bound to one participant.
func (s *AuthService) GuestLogin(ctx context.Context, req *connect.Request[v1.GuestLoginRequest]) (*connect.Response[v1.GuestLoginResponse], error) {
	role, err := s.guests.Authenticate(ctx, auth.InviteCredential{
		TripID: req.Msg.TripID,
		Token:  req.Msg.InviteToken,
	})
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			slog.Warn("Guest login rejected", "trip_id", req.Msg.TripID)
			return nil, connect.NewError(connect.CodeUnauthenticated, err)
		}
		slog.Error("Guest login failed", "trip_id", req.Msg.TripID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	guest, ok := role.(auth.Guest)
	if !ok {
		return nil, connect.NewError(connect.CodeInternal, errors.New("invite did not resolve to a guest"))
	}

	token, err := s.jwtManager.Generate(guest)
	if err != nil {
		slog.Error("Failed to generate token", "trip_id", guest.TripID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("Guest logged in", "trip_id", guest.TripID, "participant_id", guest.ParticipantID)
	return connect.NewResponse(&v1.GuestLoginResponse{
		Token:         token,
		Role:          string(guest.Kind()),
		TripID:        guest.TripID,
		ParticipantID: guest.ParticipantID,
	}), nil
}

// WhoAmI reports the role carried by the request's token, if any.
func (s *AuthService) WhoAmI(ctx context.Context, _ *connect.Request[v1.WhoAmIRequest]) (*connect.Response[v1.WhoAmIResponse], error) {
	role := middleware.GetRole(ctx)
	resp := &v1.WhoAmIResponse{Role: string(role.Kind())}
	if g, ok := role.(auth.Guest); ok {
		resp.TripID = g.TripID
		resp.ParticipantID = g.ParticipantID
	}
	return connect.NewResponse(resp), nil
}
