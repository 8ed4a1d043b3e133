package auth

// RoleKind names a Role in tokens and API responses.
type RoleKind string

const (
	KindAdmin RoleKind = "admin"
	KindGuest RoleKind = "guest"
	KindNone  RoleKind = "none"
)

// Role is who the caller is. It is one of Admin, Guest or None.
type Role interface {
	Kind() RoleKind
	isRole()
}

// Admin manages all trips.
type Admin struct{}

// Guest is a participant who opened a trip through their invite link.
// A guest is bound to exactly one trip.
type Guest struct {
	TripID        string
	ParticipantID string
}

// None is an unauthenticated caller.
type None struct{}

func (Admin) Kind() RoleKind { return KindAdmin }
func (Guest) Kind() RoleKind { return KindGuest }
func (None) Kind() RoleKind  { return KindNone }

func (Admin) isRole() {}
func (Guest) isRole() {}
func (None) isRole()  {}

// CanManageTrips reports whether role may create, delete and list trips and
// manage participants.
func CanManageTrips(role Role) bool {
	_, ok := role.(Admin)
	return ok
}

// CanViewTrip reports whether role may read the given trip and its settlement.
func CanViewTrip(role Role, tripID string) bool {
	switch r := role.(type) {
	case Admin:
		return true
	case Guest:
		return r.TripID == tripID
	default:
		return false
	}
}

// CanAddExpense reports whether role may record an expense paid by payerID.
// Guests may only record what they paid themselves.
func CanAddExpense(role Role, tripID, payerID string) bool {
	switch r := role.(type) {
	case Admin:
		return true
	case Guest:
		return r.TripID == tripID && r.ParticipantID == payerID
	default:
		return false
	}
}
