package model

import "time"

// Booking statuses.  Any status may move to any other status; there is
// no terminal state.
const (
	StatusPending   = "PENDING"
	StatusConfirmed = "CONFIRMED"
	StatusCancelled = "CANCELLED"
)

// ValidStatus reports whether s is one of the booking statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// Booking records a user's stay in a room.  The hotel is derived from
// the room.  TotalPrice is supplied by the client and stored as-is.
//
// Fields:
//
//	ID              – opaque identifier.
//	UserID          – owner of the booking, always the creating identity.
//	RoomID          – booked room.
//	StartDate       – check-in.
//	EndDate         – check-out.
//	GuestCount      – number of guests.
//	SpecialRequests – optional free text.
//	TotalPrice      – price computed by the client.
//	Status          – PENDING, CONFIRMED or CANCELLED.
type Booking struct {
	ID              string    `json:"id" bson:"_id"`
	UserID          string    `json:"userId" bson:"userId"`
	RoomID          string    `json:"roomId" bson:"roomId"`
	StartDate       time.Time `json:"startDate" bson:"startDate"`
	EndDate         time.Time `json:"endDate" bson:"endDate"`
	GuestCount      int       `json:"guestCount" bson:"guestCount"`
	SpecialRequests *string   `json:"specialRequests" bson:"specialRequests,omitempty"`
	TotalPrice      float64   `json:"totalPrice" bson:"totalPrice"`
	Status          string    `json:"status" bson:"status"`
	CreatedAt       time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt" bson:"updatedAt"`
}

// BookingPatch carries a partial booking update, most commonly a status
// change.
type BookingPatch struct {
	Status          *string    `json:"status" validate:"omitempty,oneof=PENDING CONFIRMED CANCELLED"`
	StartDate       *time.Time `json:"startDate"`
	EndDate         *time.Time `json:"endDate"`
	GuestCount      *int       `json:"guestCount" validate:"omitempty,gte=1"`
	SpecialRequests *string    `json:"specialRequests"`
	TotalPrice      *float64   `json:"totalPrice" validate:"omitempty,gte=0"`
}

func (p BookingPatch) Empty() bool {
	return p.Status == nil && p.StartDate == nil && p.EndDate == nil && p.GuestCount == nil &&
		p.SpecialRequests == nil && p.TotalPrice == nil
}

func (p BookingPatch) Apply(b *Booking) {
	if p.Status != nil {
		b.Status = *p.Status
	}
	if p.StartDate != nil {
		b.StartDate = p.StartDate.UTC()
	}
	if p.EndDate != nil {
		b.EndDate = p.EndDate.UTC()
	}
	if p.GuestCount != nil {
		b.GuestCount = *p.GuestCount
	}
	if p.SpecialRequests != nil {
		s := *p.SpecialRequests
		b.SpecialRequests = &s
	}
	if p.TotalPrice != nil {
		b.TotalPrice = *p.TotalPrice
	}
}
