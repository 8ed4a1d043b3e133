// Package invite builds the links that let participants open a trip as guests.
package invite

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/mmynk/tripsplit/internal/models"
)

// Query parameters read by the frontend when a guest opens an invite link.
const (
	ParamTripID = "tripId"
	ParamToken  = "token"
)

// Invite is everything needed to tell a participant about their trip.
type Invite struct {
	To        string
	Name      string
	TripTitle string
	Link      string
}

// Subject is the e-mail subject line.
func (i Invite) Subject() string {
	return fmt.Sprintf("Invitation to the trip: %s", i.TripTitle)
}

// Body is the plain-text e-mail body.
func (i Invite) Body() string {
	return fmt.Sprintf("Hello %s,\n\nyou have been invited to %q. Open your personal link to add expenses and see who owes whom:\n\n%s\n",
		i.Name, i.TripTitle, i.Link)
}

// MailtoURL opens the user's mail client with the invite prefilled.
func (i Invite) MailtoURL() string {
	q := url.Values{}
	q.Set("subject", i.Subject())
	q.Set("body", i.Body())
	// mailto expects %20 for spaces, not "+".
	return "mailto:" + url.PathEscape(i.To) + "?" + strings.ReplaceAll(q.Encode(), "+", "%20")
}

// Builder creates invites against the public base URL of the app.
type Builder struct {
	baseURL string
}

// NewBuilder validates baseURL (e.g. https://trips.example.com/).
func NewBuilder(baseURL string) (*Builder, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid app url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid app url %q: scheme and host are required", baseURL)
	}
	return &Builder{baseURL: baseURL}, nil
}

// Link returns the guest link for participant p of trip.
func (b *Builder) Link(trip *models.Trip, p *models.Participant) string {
	u, _ := url.Parse(b.baseURL) // validated in NewBuilder
	q := u.Query()
	q.Set(ParamTripID, trip.ID)
	q.Set(ParamToken, p.InviteToken)
	u.RawQuery = q.Encode()
	return u.String()
}

// For builds the complete invite for participant p of trip.
func (b *Builder) For(trip *models.Trip, p *models.Participant) Invite {
	return Invite{
		To:        p.Email,
		Name:      p.Name,
		TripTitle: trip.Title,
		Link:      b.Link(trip, p),
	}
}
