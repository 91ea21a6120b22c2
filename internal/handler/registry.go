package handler

import (
	"github.com/iliyamo/hotel-booking/internal/model"
	"github.com/iliyamo/hotel-booking/internal/policy"
	"github.com/iliyamo/hotel-booking/internal/service"
)

// registry maps every operation name to its implementation.  Arguments:
//
//	signup, login, createHotel, createRoom, createBooking  {input}
//	updateHotel, updateRoom, updateBooking                 {id, input}
//	hotel, room, booking, user, deleteHotel                {id}
//	bookings                                               {userId}
//	me, hotels, rooms, users                               none
func (h *OperationHandler) registry() map[policy.Operation]opFunc {
	return map[policy.Operation]opFunc{
		policy.OpSignup: func(cl *call) (any, error) {
			var in service.SignupInput
			if err := cl.input(&in); err != nil {
				return nil, err
			}
			return h.Auth.Signup(cl.ctx, cl.identity, in)
		},
		policy.OpLogin: func(cl *call) (any, error) {
			var in service.LoginInput
			if err := cl.input(&in); err != nil {
				return nil, err
			}
			return h.Auth.Login(cl.ctx, cl.identity, in)
		},
		policy.OpMe: func(cl *call) (any, error) {
			return h.Auth.Me(cl.ctx, cl.identity)
		},
		policy.OpUser: func(cl *call) (any, error) {
			return h.Auth.User(cl.ctx, cl.identity, cl.vars.ID)
		},
		policy.OpUsers: func(cl *call) (any, error) {
			return h.Auth.Users(cl.ctx, cl.identity)
		},

		policy.OpHotels: func(cl *call) (any, error) {
			return h.Catalog.ListHotels(cl.ctx, cl.identity)
		},
		policy.OpHotel: func(cl *call) (any, error) {
			return h.Catalog.GetHotel(cl.ctx, cl.identity, cl.vars.ID)
		},
		policy.OpCreateHotel: func(cl *call) (any, error) {
			var in service.CreateHotelInput
			if err := cl.input(&in); err != nil {
				return nil, err
			}
			return h.Catalog.CreateHotel(cl.ctx, cl.identity, in)
		},
		policy.OpUpdateHotel: func(cl *call) (any, error) {
			var p model.HotelPatch
			if err := cl.input(&p); err != nil {
				return nil, err
			}
			return h.Catalog.UpdateHotel(cl.ctx, cl.identity, cl.vars.ID, p)
		},
		policy.OpDeleteHotel: func(cl *call) (any, error) {
			return h.Catalog.DeleteHotel(cl.ctx, cl.identity, cl.vars.ID)
		},

		policy.OpRooms: func(cl *call) (any, error) {
			return h.Catalog.ListRooms(cl.ctx, cl.identity)
		},
		policy.OpRoom: func(cl *call) (any, error) {
			return h.Catalog.GetRoom(cl.ctx, cl.identity, cl.vars.ID)
		},
		policy.OpCreateRoom: func(cl *call) (any, error) {
			var in service.CreateRoomInput
			if err := cl.input(&in); err != nil {
				return nil, err
			}
			return h.Catalog.CreateRoom(cl.ctx, cl.identity, in)
		},
		policy.OpUpdateRoom: func(cl *call) (any, error) {
			var p model.RoomPatch
			if err := cl.input(&p); err != nil {
				return nil, err
			}
			return h.Catalog.UpdateRoom(cl.ctx, cl.identity, cl.vars.ID, p)
		},

		policy.OpBooking: func(cl *call) (any, error) {
			return h.Bookings.Get(cl.ctx, cl.identity, cl.vars.ID)
		},
		policy.OpBookings: func(cl *call) (any, error) {
			return h.Bookings.ListByUser(cl.ctx, cl.identity, cl.vars.UserID)
		},
		policy.OpCreateBooking: func(cl *call) (any, error) {
			var in service.CreateBookingInput
			if err := cl.input(&in); err != nil {
				return nil, err
			}
			return h.Bookings.Create(cl.ctx, cl.identity, in)
		},
		policy.OpUpdateBooking: func(cl *call) (any, error) {
			var p model.BookingPatch
			if err := cl.input(&p); err != nil {
				return nil, err
			}
			return h.Bookings.Update(cl.ctx, cl.identity, cl.vars.ID, p)
		},
	}
}
