// Package policy is the authorization gate.  Every API operation is
// listed in a single table together with the requirement the caller must
// satisfy.  Services evaluate the table once at the start of each
// operation, before any store access.
package policy

import (
	"sort"

	"github.com/iliyamo/hotel-booking/internal/apperror"
	"github.com/iliyamo/hotel-booking/internal/model"
)

// Identity is the authenticated actor attached to a request.  It is
// resolved server-side from the signed token on every request; a nil
// *Identity means the caller is anonymous.
type Identity struct {
	ID    string
	Email string
	Role  string
}

func (i *Identity) IsAdmin() bool { return i != nil && i.Role == model.RoleAdmin }

// Requirement is what an operation demands of its caller.
type Requirement int

const (
	Public Requirement = iota
	Authenticated
	Admin
)

func (r Requirement) String() string {
	switch r {
	case Public:
		return "public"
	case Authenticated:
		return "authenticated"
	case Admin:
		return "admin"
	}
	return "unknown"
}

// Operation names, matching the names accepted by the API endpoint.
type Operation string

const (
	OpSignup        Operation = "signup"
	OpLogin         Operation = "login"
	OpMe            Operation = "me"
	OpUser          Operation = "user"
	OpUsers         Operation = "users"
	OpHotels        Operation = "hotels"
	OpHotel         Operation = "hotel"
	OpCreateHotel   Operation = "createHotel"
	OpUpdateHotel   Operation = "updateHotel"
	OpDeleteHotel   Operation = "deleteHotel"
	OpRooms         Operation = "rooms"
	OpRoom          Operation = "room"
	OpCreateRoom    Operation = "createRoom"
	OpUpdateRoom    Operation = "updateRoom"
	OpBooking       Operation = "booking"
	OpBookings      Operation = "bookings"
	OpCreateBooking Operation = "createBooking"
	OpUpdateBooking Operation = "updateBooking"
)

// table is the single source of truth for who may call what.
// updateBooking only requires an authenticated caller; neither ownership
// nor role is checked.
var table = map[Operation]Requirement{
	OpSignup:   Public,
	OpLogin:    Public,
	OpUser:     Public,
	OpUsers:    Public,
	OpHotels:   Public,
	OpHotel:    Public,
	OpRooms:    Public,
	OpRoom:     Public,
	OpBooking:  Public,
	OpBookings: Public,

	OpMe:            Authenticated,
	OpCreateBooking: Authenticated,
	OpUpdateBooking: Authenticated,

	OpCreateHotel: Admin,
	OpUpdateHotel: Admin,
	OpDeleteHotel: Admin,
	OpCreateRoom:  Admin,
	OpUpdateRoom:  Admin,
}

// RequirementFor looks up the requirement for op.
func RequirementFor(op Operation) (Requirement, bool) {
	r, ok := table[op]
	return r, ok
}

// Authorize checks identity against the requirement of op.  It returns an
// Unauthenticated error when a protected operation is called
// anonymously and an Unauthorized error when the role is insufficient.
// Operations missing from the table are always refused.
func Authorize(op Operation, identity *Identity) error {
	req, ok := table[op]
	if !ok {
		return apperror.Unauthorized()
	}
	switch req {
	case Public:
		return nil
	case Authenticated:
		if identity == nil {
			return apperror.Unauthenticated()
		}
		return nil
	case Admin:
		if identity == nil {
			return apperror.Unauthenticated()
		}
		if !identity.IsAdmin() {
			return apperror.Unauthorized()
		}
		return nil
	}
	return apperror.Unauthorized()
}

// Operations returns every known operation in lexical order.
func Operations() []Operation {
	out := make([]Operation, 0, len(table))
	for op := range table {
		out = append(out, op)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
