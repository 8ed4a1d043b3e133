// Package notify delivers invite e-mails.
package notify

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"

	"gopkg.in/gomail.v2"

	"github.com/mmynk/tripsplit/internal/invite"
)

// ErrNotConfigured is returned by LogMailer: no e-mail leaves the process.
var ErrNotConfigured = errors.New("invite e-mails are not configured")

// Mailer sends an invite to its recipient.
type Mailer interface {
	SendInvite(ctx context.Context, inv invite.Invite) error
}

// SMTPConfig holds the SMTP connection settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// dialer is the part of gomail.Dialer used by SMTPMailer.
type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPMailer sends invites through an SMTP server.
type SMTPMailer struct {
	from   string
	dialer dialer
}

// NewSMTPMailer creates a mailer for the given server.
func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		from:   cfg.From,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

// SendInvite builds the message and sends it. gomail has no context support;
// a cancelled ctx is only honored before dialing.
func (m *SMTPMailer) SendInvite(ctx context.Context, inv invite.Invite) error {
	if inv.To == "" {
		return fmt.Errorf("participant %s has no e-mail address", inv.Name)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := m.dialer.DialAndSend(m.message(inv)); err != nil {
		return fmt.Errorf("failed to send invite to %s: %w", inv.To, err)
	}
	return nil
}

func (m *SMTPMailer) message(inv invite.Invite) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetAddressHeader("To", inv.To, inv.Name)
	msg.SetHeader("Subject", inv.Subject())
	msg.SetBody("text/plain", inv.Body())
	msg.AddAlternative("text/html", fmt.Sprintf(
		`<h2>%s</h2><p>Hello %s, you have been invited to this trip.</p><p><a href="%s">Open the trip</a></p>`,
		html.EscapeString(inv.TripTitle), html.EscapeString(inv.Name), html.EscapeString(inv.Link),
	))
	return msg
}

// LogMailer stands in when no SMTP server is configured. It never sends and
// always returns ErrNotConfigured.
type LogMailer struct{}

// SendInvite logs the skipped invite. The link carries the guest's token and
// is not logged.
func (LogMailer) SendInvite(_ context.Context, inv invite.Invite) error {
	if inv.To == "" {
		return fmt.Errorf("participant %s has no e-mail address", inv.Name)
	}
	slog.Info("Invite e-mail not sent, SMTP is not configured",
		"to", inv.To,
		"trip", inv.TripTitle,
	)
	return ErrNotConfigured
}
