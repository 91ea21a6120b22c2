package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hotel-booking/internal/apperror"
	"github.com/iliyamo/hotel-booking/internal/model"
	"github.com/iliyamo/hotel-booking/internal/policy"
	"github.com/iliyamo/hotel-booking/internal/queue"
	"github.com/iliyamo/hotel-booking/internal/repository/memstore"
)

const testSecret = "test-secret"

type recordingPublisher struct {
	mu     sync.Mutex
	events []queue.BookingEvent
	seen   chan struct{}
}

func newRecordingPublisher() *recordingPublisher {
	return &recordingPublisher{seen: make(chan struct{}, 16)}
}

func (p *recordingPublisher) PublishBooking(_ context.Context, ev queue.BookingEvent) error {
	p.mu.Lock()
	p.events = append(p.events, ev)
	p.mu.Unlock()
	p.seen <- struct{}{}
	return nil
}

func (p *recordingPublisher) wait(t *testing.T, n int) []queue.BookingEvent {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-p.seen:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for event %d", i+1)
		}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]queue.BookingEvent(nil), p.events...)
}

type fixture struct {
	stores   Stores
	auth     *AuthService
	catalog  *CatalogService
	bookings *BookingService
	resolver *Resolver
	events   *recordingPublisher
}

func newFixture() *fixture {
	mem := memstore.New()
	stores := Stores{Users: mem.Users(), Hotels: mem.Hotels(), Rooms: mem.Rooms(), Bookings: mem.Bookings()}
	events := newRecordingPublisher()
	return &fixture{
		stores:   stores,
		auth:     NewAuthService(stores.Users, testSecret, 60, 4),
		catalog:  NewCatalogService(stores.Hotels, stores.Rooms),
		bookings: NewBookingService(stores.Bookings, stores.Rooms, events),
		resolver: NewResolver(stores),
		events:   events,
	}
}

// signup creates an account and returns the identity a verified token
// for it resolves to.
func (f *fixture) signup(t *testing.T, email, role string) *policy.Identity {
	t.Helper()
	ctx := context.Background()
	p, err := f.auth.Signup(ctx, nil, SignupInput{Email: email, Password: "secret1", Name: "Test", Role: role})
	require.NoError(t, err)
	ident := f.auth.Authenticate(ctx, p.Token)
	require.NotNil(t, ident)
	return ident
}

func (f *fixture) hotel(t *testing.T, admin *policy.Identity) *model.Hotel {
	t.Helper()
	h, err := f.catalog.CreateHotel(context.Background(), admin, CreateHotelInput{Name: "Seaside", Price: 1223})
	require.NoError(t, err)
	return h
}

func (f *fixture) room(t *testing.T, admin *policy.Identity, hotelID string) *model.Room {
	t.Helper()
	r, err := f.catalog.CreateRoom(context.Background(), admin, CreateRoomInput{HotelID: hotelID, RoomType: "Double", Price: 200})
	require.NoError(t, err)
	return r
}

func stay(days int) (time.Time, time.Time) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, days)
}

func requireCode(t *testing.T, err error, code apperror.Code) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, code, apperror.CodeOf(err), err.Error())
}
