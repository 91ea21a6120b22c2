package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hotel-booking/internal/middleware"
	"github.com/iliyamo/hotel-booking/internal/model"
	"github.com/iliyamo/hotel-booking/internal/policy"
	"github.com/iliyamo/hotel-booking/internal/repository/memstore"
	"github.com/iliyamo/hotel-booking/internal/service"
)

type server struct {
	e      *echo.Echo
	stores service.Stores
	h      *OperationHandler
}

func newServer(t *testing.T) *server {
	t.Helper()
	mem := memstore.New()
	stores := service.Stores{Users: mem.Users(), Hotels: mem.Hotels(), Rooms: mem.Rooms(), Bookings: mem.Bookings()}
	auth := service.NewAuthService(stores.Users, "handler-secret", 60, 4)
	h := NewOperationHandler(
		auth,
		service.NewCatalogService(stores.Hotels, stores.Rooms),
		service.NewBookingService(stores.Bookings, stores.Rooms, service.NopPublisher{}),
		service.NewResolver(stores),
	)
	e := echo.New()
	e.POST("/v1/operations", h.Handle, middleware.Identity(auth))
	return &server{e: e, stores: stores, h: h}
}

type result struct {
	Status int
	Data   map[string]json.RawMessage
	Errors []ErrorBody
}

func (s *server) do(t *testing.T, token, body string) result {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/operations", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	var out struct {
		Data   map[string]json.RawMessage `json:"data"`
		Errors []ErrorBody                `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return result{Status: rec.Code, Data: out.Data, Errors: out.Errors}
}

func (s *server) op(t *testing.T, token, op string, vars any, include ...string) result {
	t.Helper()
	body, err := json.Marshal(map[string]any{"operation": op, "variables": vars, "include": include})
	require.NoError(t, err)
	return s.do(t, token, string(body))
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func (s *server) signup(t *testing.T, email, role string) string {
	t.Helper()
	r := s.op(t, "", "signup", map[string]any{"input": map[string]any{
		"email": email, "password": "secret1", "name": "Test", "role": role,
	}})
	require.Empty(t, r.Errors)
	payload := decode[struct {
		Token string `json:"token"`
	}](t, r.Data["signup"])
	require.NotEmpty(t, payload.Token)
	return payload.Token
}

func TestEveryOperationIsRegistered(t *testing.T) {
	h := newServer(t).h
	for _, op := range policy.Operations() {
		_, ok := h.ops[op]
		assert.True(t, ok, "no handler for %s", op)
	}
	assert.Len(t, h.ops, len(policy.Operations()))
}

func TestMalformedEnvelope(t *testing.T) {
	s := newServer(t)

	bad := s.do(t, "", `{"operation": `)
	assert.Equal(t, http.StatusBadRequest, bad.Status)
	require.Len(t, bad.Errors, 1)

	unknown := s.do(t, "", `{"operation": "dropDatabase"}`)
	assert.Equal(t, http.StatusBadRequest, unknown.Status)
	assert.Contains(t, unknown.Errors[0].Message, "dropDatabase")
}

func TestMeRequiresIdentity(t *testing.T) {
	s := newServer(t)

	anon := s.op(t, "", "me", nil)
	assert.Equal(t, http.StatusOK, anon.Status)
	assert.Equal(t, "null", string(anon.Data["me"]))
	require.Len(t, anon.Errors, 1)
	assert.Equal(t, "UNAUTHENTICATED", string(anon.Errors[0].Code))
	assert.Equal(t, []any{"me"}, anon.Errors[0].Path)

	token := s.signup(t, "guest@example.com", "")
	me := s.op(t, token, "me", nil)
	require.Empty(t, me.Errors)
	u := decode[map[string]any](t, me.Data["me"])
	assert.Equal(t, "guest@example.com", u["email"])
	assert.NotContains(t, u, "password")
	assert.NotContains(t, u, "PasswordHash")
}

func TestInvalidTokenIsAnonymous(t *testing.T) {
	s := newServer(t)
	r := s.op(t, "not-a-jwt", "hotels", nil)
	assert.Equal(t, http.StatusOK, r.Status)
	assert.Empty(t, r.Errors)
	assert.Equal(t, "[]", string(r.Data["hotels"]))
}

func TestValidationErrorsCarryFields(t *testing.T) {
	s := newServer(t)
	r := s.op(t, "", "signup", map[string]any{"input": map[string]any{"email": "nope", "password": "1"}})
	require.Len(t, r.Errors, 1)
	assert.Equal(t, "BAD_USER_INPUT", string(r.Errors[0].Code))
	assert.NotEmpty(t, r.Errors[0].Fields)

	typed := s.op(t, "", "login", map[string]any{"input": map[string]any{"email": 42}})
	require.Len(t, typed.Errors, 1)
	assert.Equal(t, "BAD_USER_INPUT", string(typed.Errors[0].Code))
}

func TestNonAdminCannotCreateHotel(t *testing.T) {
	s := newServer(t)
	token := s.signup(t, "guest@example.com", "")

	r := s.op(t, token, "createHotel", map[string]any{"input": map[string]any{"name": "X", "price": 10}})
	require.Len(t, r.Errors, 1)
	assert.Equal(t, "UNAUTHORIZED", string(r.Errors[0].Code))

	list := s.op(t, "", "hotels", nil)
	assert.Equal(t, "[]", string(list.Data["hotels"]))
}

func TestBookingFlowWithEdges(t *testing.T) {
	s := newServer(t)
	admin := s.signup(t, "admin@example.com", model.RoleAdmin)
	guest := s.signup(t, "guest@example.com", "")
	other := s.signup(t, "other@example.com", "")

	hr := s.op(t, admin, "createHotel", map[string]any{"input": map[string]any{
		"name": "Seaside", "price": 1223, "availableRooms": 10, "amenities": []string{"Pool"},
	}})
	require.Empty(t, hr.Errors)
	hotel := decode[model.Hotel](t, hr.Data["createHotel"])
	assert.Equal(t, 1223.0, hotel.Price)

	rr := s.op(t, admin, "createRoom", map[string]any{"input": map[string]any{
		"hotelId": hotel.ID, "roomType": "Double", "price": 200, "features": []string{"WiFi", "TV"},
	}})
	require.Empty(t, rr.Errors)
	room := decode[model.Room](t, rr.Data["createRoom"])
	assert.Equal(t, []string{"WiFi", "TV"}, room.Features)

	br := s.op(t, guest, "createBooking", map[string]any{"input": map[string]any{
		"roomId": room.ID, "userId": "someone-else", "startDate": "2025-06-01", "endDate": "2025-06-04",
		"guestCount": 2, "totalPrice": 600,
	}}, "user", "room", "hotel")
	require.Empty(t, br.Errors)
	booking := decode[struct {
		model.Booking
		User  *model.User  `json:"user"`
		Room  *model.Room  `json:"room"`
		Hotel *model.Hotel `json:"hotel"`
	}](t, br.Data["createBooking"])
	assert.Equal(t, model.StatusPending, booking.Status)
	assert.Equal(t, "guest@example.com", booking.User.Email)
	assert.Equal(t, booking.User.ID, booking.UserID)
	assert.Equal(t, room.ID, booking.Room.ID)
	assert.Equal(t, hotel.ID, booking.Hotel.ID)
	assert.Equal(t, time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC), booking.EndDate)

	ur := s.op(t, other, "updateBooking", map[string]any{"id": booking.ID, "input": map[string]any{"status": "CONFIRMED"}})
	require.Empty(t, ur.Errors)
	assert.Equal(t, model.StatusConfirmed, decode[model.Booking](t, ur.Data["updateBooking"]).Status)

	hv := s.op(t, "", "hotel", map[string]any{"id": hotel.ID}, "rooms", "bookings", "user")
	require.Empty(t, hv.Errors)
	expanded := decode[struct {
		Rooms    []model.Room    `json:"rooms"`
		Bookings []model.Booking `json:"bookings"`
		User     model.User      `json:"user"`
	}](t, hv.Data["hotel"])
	assert.Len(t, expanded.Rooms, 1)
	require.Len(t, expanded.Bookings, 1)
	assert.Equal(t, model.StatusConfirmed, expanded.Bookings[0].Status)
	assert.Equal(t, "admin@example.com", expanded.User.Email)

	mine := s.op(t, "", "bookings", map[string]any{"userId": booking.UserID})
	assert.Len(t, decode[[]model.Booking](t, mine.Data["bookings"]), 1)

	dr := s.op(t, admin, "deleteHotel", map[string]any{"id": hotel.ID})
	require.Empty(t, dr.Errors)
	gone := s.op(t, "", "hotel", map[string]any{"id": hotel.ID})
	assert.Empty(t, gone.Errors)
	assert.Equal(t, "null", string(gone.Data["hotel"]))

	orphaned := s.op(t, "", "booking", map[string]any{"id": booking.ID}, "hotel")
	require.Empty(t, orphaned.Errors)
	assert.Nil(t, decode[map[string]any](t, orphaned.Data["booking"])["hotel"])
}

func TestFailingEdgeKeepsRoot(t *testing.T) {
	s := newServer(t)
	ctx := context.Background()
	b := &model.Booking{UserID: "ghost", RoomID: "gone", StartDate: time.Now(), EndDate: time.Now().Add(24 * time.Hour), GuestCount: 1}
	require.NoError(t, s.stores.Bookings.Create(ctx, b))

	r := s.op(t, "", "booking", map[string]any{"id": b.ID}, "user", "room")
	require.Len(t, r.Errors, 1)
	assert.Equal(t, "NOT_FOUND", string(r.Errors[0].Code))
	assert.Equal(t, []any{"booking", "user"}, r.Errors[0].Path)

	root := decode[map[string]any](t, r.Data["booking"])
	assert.Equal(t, b.ID, root["id"])
	assert.Nil(t, root["user"])
	assert.Nil(t, root["room"])
}
