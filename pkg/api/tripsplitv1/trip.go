package tripsplitv1

type Participant struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email,omitempty"`
	PersonCount int32  `json:"person_count"`
	// InviteToken is only sent to admins.
	InviteToken string `json:"invite_token,omitempty"`
}

type Expense struct {
	ID        string  `json:"id"`
	PayerID   string  `json:"payer_id"`
	PayerName string  `json:"payer_name"`
	Amount    float64 `json:"amount"`
	Reason    string  `json:"reason"`
	Date      string  `json:"date"`
}

type Trip struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	StartDate    string         `json:"start_date"`
	EndDate      string         `json:"end_date"`
	Participants []*Participant `json:"participants"`
	Expenses     []*Expense     `json:"expenses"`
	TotalSpent   float64        `json:"total_spent"`
	CreatedAt    int64          `json:"created_at"`
	UpdatedAt    int64          `json:"updated_at"`
}

type TripSummary struct {
	ID               string  `json:"id"`
	Title            string  `json:"title"`
	StartDate        string  `json:"start_date"`
	EndDate          string  `json:"end_date"`
	ParticipantCount int32   `json:"participant_count"`
	ExpenseCount     int32   `json:"expense_count"`
	TotalSpent       float64 `json:"total_spent"`
}

type ListTripsRequest struct{}

type ListTripsResponse struct {
	Trips []*TripSummary `json:"trips"`
}

type CreateTripRequest struct {
	Title     string `json:"title"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type CreateTripResponse struct {
	Trip *Trip `json:"trip"`
}

type GetTripRequest struct {
	TripID string `json:"trip_id"`
}

type GetTripResponse struct {
	Trip *Trip `json:"trip"`
}

type DeleteTripRequest struct {
	TripID string `json:"trip_id"`
}

type DeleteTripResponse struct{}

type AddParticipantRequest struct {
	TripID      string `json:"trip_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PersonCount int32  `json:"person_count"`
}

type AddParticipantResponse struct {
	Participant *Participant `json:"participant"`
}

type UpdateParticipantWeightRequest struct {
	TripID        string `json:"trip_id"`
	ParticipantID string `json:"participant_id"`
	PersonCount   int32  `json:"person_count"`
}

type UpdateParticipantWeightResponse struct {
	Participant *Participant `json:"participant"`
}

type RemoveParticipantRequest struct {
	TripID        string `json:"trip_id"`
	ParticipantID string `json:"participant_id"`
}

type RemoveParticipantResponse struct{}

type AddExpenseRequest struct {
	TripID  string  `json:"trip_id"`
	PayerID string  `json:"payer_id"`
	Amount  float64 `json:"amount"`
	Reason  string  `json:"reason"`
	Date    string  `json:"date"`

	// AmountText is the amount as typed, e.g. "12,50". When set it takes
	// precedence over Amount.
	AmountText string `json:"amount_text,omitempty"`
}

type AddExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type RemoveExpenseRequest struct {
	TripID    string `json:"trip_id"`
	ExpenseID string `json:"expense_id"`
}

type RemoveExpenseResponse struct{}

type GetInviteLinkRequest struct {
	TripID        string `json:"trip_id"`
	ParticipantID string `json:"participant_id"`
	SendEmail     bool   `json:"send_email"`
}

type GetInviteLinkResponse struct {
	Link      string `json:"link"`
	MailtoURL string `json:"mailto_url"`
	EmailSent bool   `json:"email_sent"`
}
