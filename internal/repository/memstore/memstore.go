// Package memstore is an in-process implementation of the user, hotel,
// room and booking stores.  It backs STORE_DRIVER=memory and the service
// tests.  Records are copied on the way in and out so callers never share
// memory with the store.
package memstore

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/hotel-booking/internal/model"
	"github.com/iliyamo/hotel-booking/internal/repository"
)

// table keeps records by id plus their insertion order.
type table[T any] struct {
	items map[string]*T
	order []string
}

func newTable[T any]() *table[T] {
	return &table[T]{items: map[string]*T{}}
}

func (t *table[T]) put(id string, v *T) {
	if _, ok := t.items[id]; !ok {
		t.order = append(t.order, id)
	}
	t.items[id] = v
}

func (t *table[T]) remove(id string) {
	delete(t.items, id)
	for i, k := range t.order {
		if k == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			return
		}
	}
}

func (t *table[T]) filter(keep func(*T) bool, clone func(*T) *T) []*T {
	out := []*T{}
	for _, id := range t.order {
		if v := t.items[id]; keep(v) {
			out = append(out, clone(v))
		}
	}
	return out
}

func all[T any](*T) bool { return true }

// Store holds every collection behind one lock.
type Store struct {
	mu       sync.RWMutex
	users    *table[model.User]
	emails   map[string]string
	hotels   *table[model.Hotel]
	rooms    *table[model.Room]
	bookings *table[model.Booking]
}

func New() *Store {
	return &Store{
		users:    newTable[model.User](),
		emails:   map[string]string{},
		hotels:   newTable[model.Hotel](),
		rooms:    newTable[model.Room](),
		bookings: newTable[model.Booking](),
	}
}

func (s *Store) Users() *Users       { return &Users{s} }
func (s *Store) Hotels() *Hotels     { return &Hotels{s} }
func (s *Store) Rooms() *Rooms       { return &Rooms{s} }
func (s *Store) Bookings() *Bookings { return &Bookings{s} }

func now() time.Time { return time.Now().UTC() }

func cloneUser(u *model.User) *model.User { c := *u; return &c }

func cloneHotel(h *model.Hotel) *model.Hotel {
	c := *h
	c.Amenities = model.CloneStrings(h.Amenities)
	c.Images = model.CloneStrings(h.Images)
	return &c
}

func cloneRoom(r *model.Room) *model.Room {
	c := *r
	c.Features = model.CloneStrings(r.Features)
	return &c
}

func cloneBooking(b *model.Booking) *model.Booking {
	c := *b
	if b.SpecialRequests != nil {
		s := *b.SpecialRequests
		c.SpecialRequests = &s
	}
	return &c
}

type Users struct{ s *Store }

func (u *Users) Create(_ context.Context, in *model.User) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if _, taken := u.s.emails[email]; taken {
		return repository.ErrEmailExists
	}
	in.ID = uuid.NewString()
	in.Email = email
	in.CreatedAt = now()
	in.UpdatedAt = in.CreatedAt
	u.s.users.put(in.ID, cloneUser(in))
	u.s.emails[email] = in.ID
	return nil
}

func (u *Users) GetByID(_ context.Context, id string) (*model.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()
	v, ok := u.s.users.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneUser(v), nil
}

func (u *Users) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	u.s.mu.RLock()
	id, ok := u.s.emails[strings.ToLower(strings.TrimSpace(email))]
	u.s.mu.RUnlock()
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u.GetByID(ctx, id)
}

func (u *Users) List(context.Context) ([]*model.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()
	return u.s.users.filter(all[model.User], cloneUser), nil
}

type Hotels struct{ s *Store }

func (h *Hotels) Create(_ context.Context, in *model.Hotel) error {
	h.s.mu.Lock()
	defer h.s.mu.Unlock()
	in.ID = uuid.NewString()
	in.Amenities = model.CloneStrings(in.Amenities)
	in.Images = model.CloneStrings(in.Images)
	in.CreatedAt = now()
	in.UpdatedAt = in.CreatedAt
	h.s.hotels.put(in.ID, cloneHotel(in))
	return nil
}

func (h *Hotels) GetByID(_ context.Context, id string) (*model.Hotel, error) {
	h.s.mu.RLock()
	defer h.s.mu.RUnlock()
	v, ok := h.s.hotels.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneHotel(v), nil
}

func (h *Hotels) List(context.Context) ([]*model.Hotel, error) {
	h.s.mu.RLock()
	defer h.s.mu.RUnlock()
	return h.s.hotels.filter(all[model.Hotel], cloneHotel), nil
}

func (h *Hotels) Update(_ context.Context, id string, p model.HotelPatch) (*model.Hotel, error) {
	h.s.mu.Lock()
	defer h.s.mu.Unlock()
	v, ok := h.s.hotels.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	next := cloneHotel(v)
	p.Apply(next)
	next.UpdatedAt = now()
	h.s.hotels.put(id, next)
	return cloneHotel(next), nil
}

// Delete leaves rooms and bookings that point at the hotel untouched.
func (h *Hotels) Delete(_ context.Context, id string) (*model.Hotel, error) {
	h.s.mu.Lock()
	defer h.s.mu.Unlock()
	v, ok := h.s.hotels.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	h.s.hotels.remove(id)
	return v, nil
}

type Rooms struct{ s *Store }

func (r *Rooms) Create(_ context.Context, in *model.Room) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	in.ID = uuid.NewString()
	in.Features = model.CloneStrings(in.Features)
	in.CreatedAt = now()
	in.UpdatedAt = in.CreatedAt
	r.s.rooms.put(in.ID, cloneRoom(in))
	return nil
}

func (r *Rooms) GetByID(_ context.Context, id string) (*model.Room, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	v, ok := r.s.rooms.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneRoom(v), nil
}

func (r *Rooms) List(context.Context) ([]*model.Room, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.rooms.filter(all[model.Room], cloneRoom), nil
}

func (r *Rooms) ListByHotel(_ context.Context, hotelID string) ([]*model.Room, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.rooms.filter(func(v *model.Room) bool { return v.HotelID == hotelID }, cloneRoom), nil
}

func (r *Rooms) Update(_ context.Context, id string, p model.RoomPatch) (*model.Room, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.rooms.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	next := cloneRoom(v)
	p.Apply(next)
	next.UpdatedAt = now()
	r.s.rooms.put(id, next)
	return cloneRoom(next), nil
}

type Bookings struct{ s *Store }

func (b *Bookings) Create(_ context.Context, in *model.Booking) error {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	in.ID = uuid.NewString()
	in.StartDate = in.StartDate.UTC()
	in.EndDate = in.EndDate.UTC()
	in.CreatedAt = now()
	in.UpdatedAt = in.CreatedAt
	b.s.bookings.put(in.ID, cloneBooking(in))
	return nil
}

func (b *Bookings) GetByID(_ context.Context, id string) (*model.Booking, error) {
	b.s.mu.RLock()
	defer b.s.mu.RUnlock()
	v, ok := b.s.bookings.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneBooking(v), nil
}

func (b *Bookings) ListByUser(_ context.Context, userID string) ([]*model.Booking, error) {
	b.s.mu.RLock()
	defer b.s.mu.RUnlock()
	return b.s.bookings.filter(func(v *model.Booking) bool { return v.UserID == userID }, cloneBooking), nil
}

func (b *Bookings) ListByRooms(_ context.Context, roomIDs []string) ([]*model.Booking, error) {
	want := make(map[string]struct{}, len(roomIDs))
	for _, id := range roomIDs {
		want[id] = struct{}{}
	}
	b.s.mu.RLock()
	defer b.s.mu.RUnlock()
	return b.s.bookings.filter(func(v *model.Booking) bool {
		_, ok := want[v.RoomID]
		return ok
	}, cloneBooking), nil
}

func (b *Bookings) Update(_ context.Context, id string, p model.BookingPatch) (*model.Booking, error) {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	v, ok := b.s.bookings.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	next := cloneBooking(v)
	p.Apply(next)
	next.UpdatedAt = now()
	b.s.bookings.put(id, next)
	return cloneBooking(next), nil
}
