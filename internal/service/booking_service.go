package service

import (
	"context"
	"errors"
	"time"

	"github.com/iliyamo/hotel-booking/internal/apperror"
	"github.com/iliyamo/hotel-booking/internal/model"
	"github.com/iliyamo/hotel-booking/internal/policy"
	"github.com/iliyamo/hotel-booking/internal/queue"
	"github.com/iliyamo/hotel-booking/internal/repository"
)

// CreateBookingInput is the payload of createBooking.  UserID is accepted
// for client compatibility and ignored: the owner is always the caller.
// TotalPrice is trusted as sent.
type CreateBookingInput struct {
	RoomID          string    `json:"roomId" validate:"required"`
	UserID          string    `json:"userId"`
	StartDate       time.Time `json:"startDate" validate:"required"`
	EndDate         time.Time `json:"endDate" validate:"required,gtfield=StartDate"`
	GuestCount      int       `json:"guestCount" validate:"gte=1"`
	SpecialRequests *string   `json:"specialRequests"`
	TotalPrice      float64   `json:"totalPrice" validate:"gte=0"`
	Status          string    `json:"status" validate:"omitempty,oneof=PENDING CONFIRMED CANCELLED"`
}

// BookingService owns the booking lifecycle.  It performs no overlap or
// availability checks and allows any status transition.
type BookingService struct {
	bookings BookingStore
	rooms    RoomStore
	events   EventPublisher
}

func NewBookingService(bookings BookingStore, rooms RoomStore, events EventPublisher) *BookingService {
	if events == nil {
		events = NopPublisher{}
	}
	return &BookingService{bookings: bookings, rooms: rooms, events: events}
}

// Create books a room for the caller.
func (s *BookingService) Create(ctx context.Context, ident *policy.Identity, in CreateBookingInput) (*model.Booking, error) {
	if err := policy.Authorize(policy.OpCreateBooking, ident); err != nil {
		return nil, err
	}
	if err := check(in); err != nil {
		return nil, err
	}
	ok, err := roomExists(ctx, s.rooms, in.RoomID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if !ok {
		return nil, apperror.NotFound("Room not found")
	}

	status := in.Status
	if status == "" {
		status = model.StatusPending
	}
	b := &model.Booking{
		UserID:          ident.ID,
		RoomID:          in.RoomID,
		StartDate:       in.StartDate.UTC(),
		EndDate:         in.EndDate.UTC(),
		GuestCount:      in.GuestCount,
		SpecialRequests: in.SpecialRequests,
		TotalPrice:      in.TotalPrice,
		Status:          status,
	}
	if err := exec(ctx, func(ctx context.Context) error { return s.bookings.Create(ctx, b) }); err != nil {
		return nil, apperror.Internal(err)
	}
	publish(s.events, bookingEvent(queue.BookingCreated, b))
	return b, nil
}

// Update applies a partial change to any booking.  Ownership is not
// checked.  It returns nil when the booking does not exist.
func (s *BookingService) Update(ctx context.Context, ident *policy.Identity, id string, p model.BookingPatch) (*model.Booking, error) {
	if err := policy.Authorize(policy.OpUpdateBooking, ident); err != nil {
		return nil, err
	}
	if err := check(p); err != nil {
		return nil, err
	}
	if p.Empty() {
		return s.get(ctx, id)
	}
	if p.StartDate != nil || p.EndDate != nil {
		ok, err := s.datesInOrder(ctx, id, p)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, apperror.Validation(apperror.FieldError{Field: "endDate", Message: "must be after startDate"})
		}
	}
	b, err := optional(ctx, func(ctx context.Context) (*model.Booking, error) {
		return s.bookings.Update(ctx, id, p)
	})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if b != nil {
		publish(s.events, bookingEvent(queue.BookingUpdated, b))
	}
	return b, nil
}

// datesInOrder reports whether the booking's dates stay ordered once p is
// applied.  A patch carrying a single date is checked against the stored
// booking; a missing booking passes so Update can report it as absent.
func (s *BookingService) datesInOrder(ctx context.Context, id string, p model.BookingPatch) (bool, error) {
	if p.StartDate != nil && p.EndDate != nil {
		return p.EndDate.After(*p.StartDate), nil
	}
	cur, err := s.get(ctx, id)
	if err != nil || cur == nil {
		return true, err
	}
	merged := *cur
	p.Apply(&merged)
	return merged.EndDate.After(merged.StartDate), nil
}

// Get returns nil when the booking does not exist.
func (s *BookingService) Get(ctx context.Context, ident *policy.Identity, id string) (*model.Booking, error) {
	if err := policy.Authorize(policy.OpBooking, ident); err != nil {
		return nil, err
	}
	return s.get(ctx, id)
}

func (s *BookingService) get(ctx context.Context, id string) (*model.Booking, error) {
	b, err := optional(ctx, func(ctx context.Context) (*model.Booking, error) {
		return s.bookings.GetByID(ctx, id)
	})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return b, nil
}

// ListByUser returns every booking of userID.
func (s *BookingService) ListByUser(ctx context.Context, ident *policy.Identity, userID string) ([]*model.Booking, error) {
	if err := policy.Authorize(policy.OpBookings, ident); err != nil {
		return nil, err
	}
	out, err := list(ctx, func(ctx context.Context) ([]*model.Booking, error) {
		return s.bookings.ListByUser(ctx, userID)
	})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return out, nil
}

func roomExists(ctx context.Context, rooms RoomStore, id string) (bool, error) {
	err := exec(ctx, func(ctx context.Context) error {
		_, err := rooms.GetByID(ctx, id)
		return err
	})
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, repository.ErrNotFound):
		return false, nil
	}
	return false, err
}
