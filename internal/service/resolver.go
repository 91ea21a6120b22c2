package service

import (
	"context"

	"github.com/iliyamo/hotel-booking/internal/apperror"
	"github.com/iliyamo/hotel-booking/internal/model"
)

// Resolver loads the related records of a result.  Every call is a fresh
// sequence of store reads; nothing is batched or cached.
type Resolver struct {
	stores Stores
}

func NewResolver(stores Stores) *Resolver {
	return &Resolver{stores: stores}
}

// BookingUser fails with NotFound when the owner no longer exists.
func (r *Resolver) BookingUser(ctx context.Context, b *model.Booking) (*model.User, error) {
	u, err := optional(ctx, func(ctx context.Context) (*model.User, error) {
		return r.stores.Users.GetByID(ctx, b.UserID)
	})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if u == nil {
		return nil, apperror.NotFound("User not found")
	}
	return u, nil
}

// BookingRoom returns nil when the room is gone.
func (r *Resolver) BookingRoom(ctx context.Context, b *model.Booking) (*model.Room, error) {
	rm, err := optional(ctx, func(ctx context.Context) (*model.Room, error) {
		return r.stores.Rooms.GetByID(ctx, b.RoomID)
	})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return rm, nil
}

// BookingHotel follows booking -> room -> hotel.  A missing link at
// either step yields nil.
func (r *Resolver) BookingHotel(ctx context.Context, b *model.Booking) (*model.Hotel, error) {
	rm, err := r.BookingRoom(ctx, b)
	if err != nil || rm == nil {
		return nil, err
	}
	return r.RoomHotel(ctx, rm)
}

func (r *Resolver) RoomHotel(ctx context.Context, rm *model.Room) (*model.Hotel, error) {
	h, err := optional(ctx, func(ctx context.Context) (*model.Hotel, error) {
		return r.stores.Hotels.GetByID(ctx, rm.HotelID)
	})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return h, nil
}

func (r *Resolver) HotelUser(ctx context.Context, h *model.Hotel) (*model.User, error) {
	u, err := optional(ctx, func(ctx context.Context) (*model.User, error) {
		return r.stores.Users.GetByID(ctx, h.UserID)
	})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return u, nil
}

func (r *Resolver) HotelRooms(ctx context.Context, h *model.Hotel) ([]*model.Room, error) {
	out, err := list(ctx, func(ctx context.Context) ([]*model.Room, error) {
		return r.stores.Rooms.ListByHotel(ctx, h.ID)
	})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return out, nil
}

// HotelBookings collects the hotel's room ids, then the bookings on those
// rooms.
func (r *Resolver) HotelBookings(ctx context.Context, h *model.Hotel) ([]*model.Booking, error) {
	rooms, err := r.HotelRooms(ctx, h)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(rooms))
	for i, rm := range rooms {
		ids[i] = rm.ID
	}
	out, err := list(ctx, func(ctx context.Context) ([]*model.Booking, error) {
		return r.stores.Bookings.ListByRooms(ctx, ids)
	})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return out, nil
}

func (r *Resolver) UserBookings(ctx context.Context, u *model.User) ([]*model.Booking, error) {
	out, err := list(ctx, func(ctx context.Context) ([]*model.Booking, error) {
		return r.stores.Bookings.ListByUser(ctx, u.ID)
	})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return out, nil
}
