package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/tripsplit/internal/auth"
	"github.com/mmynk/tripsplit/internal/invite"
	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/notify"
	v1 "github.com/mmynk/tripsplit/pkg/api/tripsplitv1"
)

// GetInviteLink returns a participant's guest link and optionally e-mails it.
// Participants stored without a token get one on first request.
func (s *TripService) GetInviteLink(ctx context.Context, req *connect.Request[v1.GetInviteLinkRequest]) (*connect.Response[v1.GetInviteLinkResponse], error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if s.invites == nil {
		return nil, connect.NewError(connect.CodeFailedPrecondition, errors.New("invite links are not configured"))
	}

	trip, err := s.store.GetTrip(ctx, req.Msg.TripID)
	if err != nil {
		return nil, toConnectError("GetInviteLink", err, "trip_id", req.Msg.TripID)
	}
	p, ok := trip.FindParticipant(req.Msg.ParticipantID)
	if !ok {
		return nil, toConnectError("GetInviteLink", errParticipantNotFound(req.Msg.ParticipantID))
	}

	if p.InviteToken == "" {
		if p, err = s.issueInviteToken(ctx, trip, p.ID); err != nil {
			return nil, toConnectError("GetInviteLink", err, "trip_id", trip.ID)
		}
	}

	inv := s.invites.For(trip, p)
	resp := &v1.GetInviteLinkResponse{
		Link:      inv.Link,
		MailtoURL: inv.MailtoURL(),
	}

	if req.Msg.SendEmail {
		if err := s.sendInvite(ctx, inv); err != nil {
			return nil, err
		}
		resp.EmailSent = true
	}

	return connect.NewResponse(resp), nil
}

func (s *TripService) issueInviteToken(ctx context.Context, trip *models.Trip, participantID string) (*models.Participant, error) {
	token, err := auth.NewInviteToken()
	if err != nil {
		return nil, err
	}
	p, _ := trip.FindParticipant(participantID)
	p.InviteToken = token
	if err := s.store.SaveTrip(ctx, trip); err != nil {
		return nil, err
	}
	slog.Info("Invite token issued", "trip_id", trip.ID, "participant_id", participantID)
	return p, nil
}

func (s *TripService) sendInvite(ctx context.Context, inv invite.Invite) error {
	if inv.To == "" {
		return connect.NewError(connect.CodeFailedPrecondition, fmt.Errorf("participant %s has no e-mail address", inv.Name))
	}

	err := s.mailer.SendInvite(ctx, inv)
	if errors.Is(err, notify.ErrNotConfigured) {
		return connect.NewError(connect.CodeFailedPrecondition, err)
	}
	s.metrics.ObserveInviteEmail(err)
	if err != nil {
		slog.Error("Failed to send invite e-mail", "to", inv.To, "trip", inv.TripTitle, "error", err)
		return connect.NewError(connect.CodeUnavailable, errors.New("failed to send invite e-mail"))
	}

	slog.Info("Invite e-mail sent", "to", inv.To, "trip", inv.TripTitle)
	return nil
}
