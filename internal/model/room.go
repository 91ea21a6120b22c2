package model

import "time"

// Room describes a bookable room inside a hotel.  Price is the nightly
// rate and overrides the hotel's base price.  RoomType is free-form; the
// client offers Single, Double, Suite and Family.  IsAvailable is stored
// but never consulted when booking.
type Room struct {
	ID          string    `json:"id" bson:"_id"`
	HotelID     string    `json:"hotelId" bson:"hotelId"`
	RoomType    string    `json:"roomType" bson:"roomType"`
	Price       float64   `json:"price" bson:"price"`
	Features    []string  `json:"features" bson:"features"`
	IsAvailable bool      `json:"isAvailable" bson:"isAvailable"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}

// RoomPatch carries a partial room update.
type RoomPatch struct {
	HotelID     *string   `json:"hotelId" validate:"omitempty,min=1"`
	RoomType    *string   `json:"roomType" validate:"omitempty,min=1"`
	Price       *float64  `json:"price" validate:"omitempty,gt=0"`
	Features    *[]string `json:"features"`
	IsAvailable *bool     `json:"isAvailable"`
}

func (p RoomPatch) Empty() bool {
	return p.HotelID == nil && p.RoomType == nil && p.Price == nil && p.Features == nil && p.IsAvailable == nil
}

func (p RoomPatch) Apply(r *Room) {
	if p.HotelID != nil {
		r.HotelID = *p.HotelID
	}
	if p.RoomType != nil {
		r.RoomType = *p.RoomType
	}
	if p.Price != nil {
		r.Price = *p.Price
	}
	if p.Features != nil {
		r.Features = CloneStrings(*p.Features)
	}
	if p.IsAvailable != nil {
		r.IsAvailable = *p.IsAvailable
	}
}
