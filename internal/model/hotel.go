package model

import "time"

// Hotel represents a property created by an admin.  A hotel contains
// rooms, each of which references the hotel by HotelID.
//
// TotalRooms is a plain counter seeded at creation and never kept in
// sync with the actual number of rooms.  IsDeleted is carried for
// compatibility but deletion is physical and no query filters on it.
type Hotel struct {
	ID          string    `json:"id" bson:"_id"`
	UserID      string    `json:"userId" bson:"userId"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description" bson:"description"`
	Price       float64   `json:"price" bson:"price"`
	Address     string    `json:"address" bson:"address"`
	PhoneNumber string    `json:"phoneNumber" bson:"phoneNumber"`
	Amenities   []string  `json:"amenities" bson:"amenities"`
	Images      []string  `json:"images" bson:"images"`
	TotalRooms  int       `json:"totalRooms" bson:"totalRooms"`
	IsDeleted   bool      `json:"isDeleted" bson:"isDeleted"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}

// HotelPatch carries a partial hotel update.  Nil fields are left
// untouched.
type HotelPatch struct {
	Name        *string   `json:"name" validate:"omitempty,min=1"`
	Description *string   `json:"description"`
	Price       *float64  `json:"price" validate:"omitempty,gt=0"`
	Address     *string   `json:"address"`
	PhoneNumber *string   `json:"phoneNumber"`
	Amenities   *[]string `json:"amenities"`
	Images      *[]string `json:"images"`
	TotalRooms  *int      `json:"totalRooms" validate:"omitempty,gte=0"`
	IsDeleted   *bool     `json:"isDeleted"`
}

// Empty reports whether the patch changes nothing.
func (p HotelPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.Price == nil && p.Address == nil &&
		p.PhoneNumber == nil && p.Amenities == nil && p.Images == nil && p.TotalRooms == nil &&
		p.IsDeleted == nil
}

// Apply copies the set fields of p onto h.
func (p HotelPatch) Apply(h *Hotel) {
	if p.Name != nil {
		h.Name = *p.Name
	}
	if p.Description != nil {
		h.Description = *p.Description
	}
	if p.Price != nil {
		h.Price = *p.Price
	}
	if p.Address != nil {
		h.Address = *p.Address
	}
	if p.PhoneNumber != nil {
		h.PhoneNumber = *p.PhoneNumber
	}
	if p.Amenities != nil {
		h.Amenities = CloneStrings(*p.Amenities)
	}
	if p.Images != nil {
		h.Images = CloneStrings(*p.Images)
	}
	if p.TotalRooms != nil {
		h.TotalRooms = *p.TotalRooms
	}
	if p.IsDeleted != nil {
		h.IsDeleted = *p.IsDeleted
	}
}

// CloneStrings returns a copy of s that never aliases the input.  A nil
// slice becomes an empty one so JSON output is [] rather than null.
func CloneStrings(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}
