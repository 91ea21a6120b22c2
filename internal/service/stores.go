// Package service holds the business logic behind every API operation.
// Each operation method evaluates the authorization table first, then
// validates input, then talks to the stores through the small interfaces
// declared here.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/iliyamo/hotel-booking/internal/model"
	"github.com/iliyamo/hotel-booking/internal/repository"
)

// storeTimeout bounds every store round-trip made on behalf of a request.
const storeTimeout = 5 * time.Second

type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]*model.User, error)
}

type HotelStore interface {
	Create(ctx context.Context, h *model.Hotel) error
	GetByID(ctx context.Context, id string) (*model.Hotel, error)
	List(ctx context.Context) ([]*model.Hotel, error)
	Update(ctx context.Context, id string, p model.HotelPatch) (*model.Hotel, error)
	Delete(ctx context.Context, id string) (*model.Hotel, error)
}

type RoomStore interface {
	Create(ctx context.Context, r *model.Room) error
	GetByID(ctx context.Context, id string) (*model.Room, error)
	List(ctx context.Context) ([]*model.Room, error)
	ListByHotel(ctx context.Context, hotelID string) ([]*model.Room, error)
	Update(ctx context.Context, id string, p model.RoomPatch) (*model.Room, error)
}

type BookingStore interface {
	Create(ctx context.Context, b *model.Booking) error
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]*model.Booking, error)
	ListByRooms(ctx context.Context, roomIDs []string) ([]*model.Booking, error)
	Update(ctx context.Context, id string, p model.BookingPatch) (*model.Booking, error)
}

// Stores bundles one implementation of each store, all from the same
// backend.
type Stores struct {
	Users    UserStore
	Hotels   HotelStore
	Rooms    RoomStore
	Bookings BookingStore
}

// optional runs fn under the store timeout and maps ErrNotFound to a nil
// result.
func optional[T any](ctx context.Context, fn func(context.Context) (*T, error)) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	v, err := fn(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func list[T any](ctx context.Context, fn func(context.Context) ([]*T, error)) ([]*T, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	out, err := fn(ctx)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []*T{}
	}
	return out, nil
}

func exec(ctx context.Context, fn func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	return fn(ctx)
}
