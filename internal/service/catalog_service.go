package service

import (
	"context"

	"github.com/iliyamo/hotel-booking/internal/apperror"
	"github.com/iliyamo/hotel-booking/internal/model"
	"github.com/iliyamo/hotel-booking/internal/policy"
)

// CreateHotelInput is the payload of createHotel.  AvailableRooms seeds
// Hotel.TotalRooms.
type CreateHotelInput struct {
	Name           string   `json:"name" validate:"required"`
	Description    string   `json:"description"`
	Price          float64  `json:"price" validate:"gt=0"`
	Address        string   `json:"address"`
	PhoneNumber    string   `json:"phoneNumber"`
	Amenities      []string `json:"amenities"`
	Images         []string `json:"images"`
	AvailableRooms int      `json:"availableRooms" validate:"gte=0"`
}

// CreateRoomInput is the payload of createRoom.  HotelID is stored as
// given; the hotel is not looked up.
type CreateRoomInput struct {
	HotelID     string   `json:"hotelId" validate:"required"`
	RoomType    string   `json:"roomType" validate:"required"`
	Price       float64  `json:"price" validate:"gt=0"`
	Features    []string `json:"features"`
	IsAvailable *bool    `json:"isAvailable"`
}

// CatalogService manages hotels and rooms.  Mutations are admin-only.
type CatalogService struct {
	hotels HotelStore
	rooms  RoomStore
}

func NewCatalogService(hotels HotelStore, rooms RoomStore) *CatalogService {
	return &CatalogService{hotels: hotels, rooms: rooms}
}

func (s *CatalogService) CreateHotel(ctx context.Context, ident *policy.Identity, in CreateHotelInput) (*model.Hotel, error) {
	if err := policy.Authorize(policy.OpCreateHotel, ident); err != nil {
		return nil, err
	}
	if err := check(in); err != nil {
		return nil, err
	}
	h := &model.Hotel{
		UserID:      ident.ID,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Address:     in.Address,
		PhoneNumber: in.PhoneNumber,
		Amenities:   model.CloneStrings(in.Amenities),
		Images:      model.CloneStrings(in.Images),
		TotalRooms:  in.AvailableRooms,
	}
	if err := exec(ctx, func(ctx context.Context) error { return s.hotels.Create(ctx, h) }); err != nil {
		return nil, apperror.Internal(err)
	}
	return h, nil
}

// UpdateHotel returns nil when the hotel does not exist.
func (s *CatalogService) UpdateHotel(ctx context.Context, ident *policy.Identity, id string, p model.HotelPatch) (*model.Hotel, error) {
	if err := policy.Authorize(policy.OpUpdateHotel, ident); err != nil {
		return nil, err
	}
	if err := check(p); err != nil {
		return nil, err
	}
	if p.Empty() {
		return s.getHotel(ctx, id)
	}
	h, err := optional(ctx, func(ctx context.Context) (*model.Hotel, error) {
		return s.hotels.Update(ctx, id, p)
	})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return h, nil
}

// DeleteHotel removes the hotel and returns it, or nil when it did not
// exist.  Its rooms and their bookings are kept.
func (s *CatalogService) DeleteHotel(ctx context.Context, ident *policy.Identity, id string) (*model.Hotel, error) {
	if err := policy.Authorize(policy.OpDeleteHotel, ident); err != nil {
		return nil, err
	}
	h, err := optional(ctx, func(ctx context.Context) (*model.Hotel, error) {
		return s.hotels.Delete(ctx, id)
	})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return h, nil
}

func (s *CatalogService) GetHotel(ctx context.Context, ident *policy.Identity, id string) (*model.Hotel, error) {
	if err := policy.Authorize(policy.OpHotel, ident); err != nil {
		return nil, err
	}
	return s.getHotel(ctx, id)
}

func (s *CatalogService) getHotel(ctx context.Context, id string) (*model.Hotel, error) {
	h, err := optional(ctx, func(ctx context.Context) (*model.Hotel, error) {
		return s.hotels.GetByID(ctx, id)
	})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return h, nil
}

// ListHotels returns every hotel, including ones flagged isDeleted.
func (s *CatalogService) ListHotels(ctx context.Context, ident *policy.Identity) ([]*model.Hotel, error) {
	if err := policy.Authorize(policy.OpHotels, ident); err != nil {
		return nil, err
	}
	out, err := list(ctx, s.hotels.List)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return out, nil
}

func (s *CatalogService) CreateRoom(ctx context.Context, ident *policy.Identity, in CreateRoomInput) (*model.Room, error) {
	if err := policy.Authorize(policy.OpCreateRoom, ident); err != nil {
		return nil, err
	}
	if err := check(in); err != nil {
		return nil, err
	}
	available := true
	if in.IsAvailable != nil {
		available = *in.IsAvailable
	}
	r := &model.Room{
		HotelID:     in.HotelID,
		RoomType:    in.RoomType,
		Price:       in.Price,
		Features:    model.CloneStrings(in.Features),
		IsAvailable: available,
	}
	if err := exec(ctx, func(ctx context.Context) error { return s.rooms.Create(ctx, r) }); err != nil {
		return nil, apperror.Internal(err)
	}
	return r, nil
}

// UpdateRoom returns nil when the room does not exist.
func (s *CatalogService) UpdateRoom(ctx context.Context, ident *policy.Identity, id string, p model.RoomPatch) (*model.Room, error) {
	if err := policy.Authorize(policy.OpUpdateRoom, ident); err != nil {
		return nil, err
	}
	if err := check(p); err != nil {
		return nil, err
	}
	var (
		r   *model.Room
		err error
	)
	if p.Empty() {
		r, err = optional(ctx, func(ctx context.Context) (*model.Room, error) { return s.rooms.GetByID(ctx, id) })
	} else {
		r, err = optional(ctx, func(ctx context.Context) (*model.Room, error) { return s.rooms.Update(ctx, id, p) })
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return r, nil
}

func (s *CatalogService) GetRoom(ctx context.Context, ident *policy.Identity, id string) (*model.Room, error) {
	if err := policy.Authorize(policy.OpRoom, ident); err != nil {
		return nil, err
	}
	r, err := optional(ctx, func(ctx context.Context) (*model.Room, error) { return s.rooms.GetByID(ctx, id) })
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return r, nil
}

func (s *CatalogService) ListRooms(ctx context.Context, ident *policy.Identity) ([]*model.Room, error) {
	if err := policy.Authorize(policy.OpRooms, ident); err != nil {
		return nil, err
	}
	out, err := list(ctx, s.rooms.List)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return out, nil
}
