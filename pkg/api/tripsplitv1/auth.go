package tripsplitv1

type AdminLoginRequest struct {
	Password string `json:"password"`
}

type AdminLoginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

type GuestLoginRequest struct {
	TripID      string `json:"trip_id"`
	InviteToken string `json:"invite_token"`
}

type GuestLoginResponse struct {
	Token         string `json:"token"`
	Role          string `json:"role"`
	TripID        string `json:"trip_id"`
	ParticipantID string `json:"participant_id"`
}

type WhoAmIRequest struct{}

type WhoAmIResponse struct {
	Role          string `json:"role"`
	TripID        string `json:"trip_id,omitempty"`
	ParticipantID string `json:"participant_id,omitempty"`
}
