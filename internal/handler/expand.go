package handler

import (
	"encoding/json"

	"github.com/iliyamo/hotel-booking/internal/apperror"
	"github.com/iliyamo/hotel-booking/internal/model"
	"github.com/iliyamo/hotel-booking/internal/service"
)

// Relationship edge names accepted in "include".
const (
	edgeUser     = "user"
	edgeRoom     = "room"
	edgeHotel    = "hotel"
	edgeRooms    = "rooms"
	edgeBookings = "bookings"
)

// expand renders v with the requested edges attached.  Edges that do not
// apply to v's type are ignored.  A failing edge is set to null and its
// error recorded; the rest of the value is still returned.
func (h *OperationHandler) expand(cl *call, v any, path ...any) any {
	if len(cl.include) == 0 {
		return v
	}
	switch t := v.(type) {
	case *model.Booking:
		if t == nil {
			return nil
		}
		return h.expandBooking(cl, t, path)
	case *model.Room:
		if t == nil {
			return nil
		}
		return h.expandRoom(cl, t, path)
	case *model.Hotel:
		if t == nil {
			return nil
		}
		return h.expandHotel(cl, t, path)
	case *model.User:
		if t == nil {
			return nil
		}
		return h.expandUser(cl, t, path)
	case *service.AuthPayload:
		if t == nil {
			return nil
		}
		out := toMap(cl, t, path)
		out["user"] = h.expand(cl, t.User, appendPath(path, "user")...)
		return out
	case []*model.Booking:
		return expandList(cl, t, path, h.expandBooking)
	case []*model.Room:
		return expandList(cl, t, path, h.expandRoom)
	case []*model.Hotel:
		return expandList(cl, t, path, h.expandHotel)
	case []*model.User:
		return expandList(cl, t, path, h.expandUser)
	}
	return v
}

func expandList[T any](cl *call, items []*T, path []any, fn func(*call, *T, []any) map[string]any) []any {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = fn(cl, item, appendPath(path, i))
	}
	return out
}

func (h *OperationHandler) expandBooking(cl *call, b *model.Booking, path []any) map[string]any {
	out := toMap(cl, b, path)
	if cl.include[edgeUser] {
		u, err := h.Resolver.BookingUser(cl.ctx, b)
		out[edgeUser] = edge(cl, u, err, appendPath(path, edgeUser))
	}
	if cl.include[edgeRoom] {
		r, err := h.Resolver.BookingRoom(cl.ctx, b)
		out[edgeRoom] = edge(cl, r, err, appendPath(path, edgeRoom))
	}
	if cl.include[edgeHotel] {
		ht, err := h.Resolver.BookingHotel(cl.ctx, b)
		out[edgeHotel] = edge(cl, ht, err, appendPath(path, edgeHotel))
	}
	return out
}

func (h *OperationHandler) expandRoom(cl *call, r *model.Room, path []any) map[string]any {
	out := toMap(cl, r, path)
	if cl.include[edgeHotel] {
		ht, err := h.Resolver.RoomHotel(cl.ctx, r)
		out[edgeHotel] = edge(cl, ht, err, appendPath(path, edgeHotel))
	}
	return out
}

func (h *OperationHandler) expandHotel(cl *call, ht *model.Hotel, path []any) map[string]any {
	out := toMap(cl, ht, path)
	if cl.include[edgeUser] {
		u, err := h.Resolver.HotelUser(cl.ctx, ht)
		out[edgeUser] = edge(cl, u, err, appendPath(path, edgeUser))
	}
	if cl.include[edgeRooms] {
		rooms, err := h.Resolver.HotelRooms(cl.ctx, ht)
		out[edgeRooms] = edge(cl, rooms, err, appendPath(path, edgeRooms))
	}
	if cl.include[edgeBookings] {
		bookings, err := h.Resolver.HotelBookings(cl.ctx, ht)
		out[edgeBookings] = edge(cl, bookings, err, appendPath(path, edgeBookings))
	}
	return out
}

func (h *OperationHandler) expandUser(cl *call, u *model.User, path []any) map[string]any {
	out := toMap(cl, u, path)
	if cl.include[edgeBookings] {
		bookings, err := h.Resolver.UserBookings(cl.ctx, u)
		out[edgeBookings] = edge(cl, bookings, err, appendPath(path, edgeBookings))
	}
	return out
}

// edge returns the value to place at path, recording err if set.  Edges
// are resolved one level deep only.
func edge[T any](cl *call, v T, err error, path []any) any {
	if err != nil {
		cl.fail(err, path...)
		return nil
	}
	return v
}

// toMap renders v through its JSON encoding so edges can be added next to
// its fields.
func toMap(cl *call, v any, path []any) map[string]any {
	out := map[string]any{}
	b, err := json.Marshal(v)
	if err == nil {
		err = json.Unmarshal(b, &out)
	}
	if err != nil {
		cl.fail(apperror.Internal(err), path...)
	}
	return out
}

func appendPath(path []any, elem any) []any {
	out := make([]any, len(path), len(path)+1)
	copy(out, path)
	return append(out, elem)
}
