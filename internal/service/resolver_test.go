package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hotel-booking/internal/apperror"
	"github.com/iliyamo/hotel-booking/internal/model"
)

func TestBookingEdges(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	admin := f.signup(t, "admin@example.com", model.RoleAdmin)
	guest := f.signup(t, "guest@example.com", "")
	h := f.hotel(t, admin)
	r := f.room(t, admin, h.ID)
	start, end := stay(2)
	b, err := f.bookings.Create(ctx, guest, CreateBookingInput{RoomID: r.ID, StartDate: start, EndDate: end, GuestCount: 1})
	require.NoError(t, err)

	u, err := f.resolver.BookingUser(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, guest.ID, u.ID)

	hotel, err := f.resolver.BookingHotel(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, h.ID, hotel.ID)

	_, err = f.catalog.DeleteHotel(ctx, admin, h.ID)
	require.NoError(t, err)
	hotel, err = f.resolver.BookingHotel(ctx, b)
	require.NoError(t, err)
	assert.Nil(t, hotel)
}

func TestBookingEdgesWithDanglingReferences(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	orphan := &model.Booking{UserID: "gone-user", RoomID: "gone-room"}

	_, err := f.resolver.BookingUser(ctx, orphan)
	requireCode(t, err, apperror.CodeNotFound)

	room, err := f.resolver.BookingRoom(ctx, orphan)
	require.NoError(t, err)
	assert.Nil(t, room)

	hotel, err := f.resolver.BookingHotel(ctx, orphan)
	require.NoError(t, err)
	assert.Nil(t, hotel)

	hotelOwner, err := f.resolver.HotelUser(ctx, &model.Hotel{UserID: "gone-user"})
	require.NoError(t, err)
	assert.Nil(t, hotelOwner)
}

func TestHotelBookingsOnlyCoverItsRooms(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	admin := f.signup(t, "admin@example.com", model.RoleAdmin)
	guest := f.signup(t, "guest@example.com", "")
	seaside := f.hotel(t, admin)
	mountain := f.hotel(t, admin)
	r1 := f.room(t, admin, seaside.ID)
	r2 := f.room(t, admin, seaside.ID)
	r3 := f.room(t, admin, mountain.ID)
	start, end := stay(2)
	for _, r := range []*model.Room{r1, r2, r3} {
		_, err := f.bookings.Create(ctx, guest, CreateBookingInput{RoomID: r.ID, StartDate: start, EndDate: end, GuestCount: 1})
		require.NoError(t, err)
	}

	rooms, err := f.resolver.HotelRooms(ctx, seaside)
	require.NoError(t, err)
	assert.Len(t, rooms, 2)

	bookings, err := f.resolver.HotelBookings(ctx, seaside)
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	for _, b := range bookings {
		assert.Contains(t, []string{r1.ID, r2.ID}, b.RoomID)
	}

	empty, err := f.resolver.HotelBookings(ctx, &model.Hotel{ID: "no-rooms"})
	require.NoError(t, err)
	assert.Empty(t, empty)

	mine, err := f.resolver.UserBookings(ctx, &model.User{ID: guest.ID})
	require.NoError(t, err)
	assert.Len(t, mine, 3)
}

// Hotel priced at 1223 with a 200/night room; a PENDING booking is later
// confirmed by a different user.
func TestBookingScenario(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	admin := f.signup(t, "admin@example.com", model.RoleAdmin)
	guest := f.signup(t, "guest@example.com", "")
	other := f.signup(t, "other@example.com", "")

	h := f.hotel(t, admin)
	assert.Equal(t, 1223.0, h.Price)
	r := f.room(t, admin, h.ID)
	assert.Equal(t, 200.0, r.Price)

	start, end := stay(3)
	b, err := f.bookings.Create(ctx, guest, CreateBookingInput{RoomID: r.ID, StartDate: start, EndDate: end, GuestCount: 2, TotalPrice: 600})
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, b.Status)

	confirmed := model.StatusConfirmed
	_, err = f.bookings.Update(ctx, other, b.ID, model.BookingPatch{Status: &confirmed})
	require.NoError(t, err)

	got, err := f.bookings.Get(ctx, nil, b.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusConfirmed, got.Status)
	roomOf, err := f.resolver.BookingRoom(ctx, got)
	require.NoError(t, err)
	assert.Equal(t, r.ID, roomOf.ID)
}
