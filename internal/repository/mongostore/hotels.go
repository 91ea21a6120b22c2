package mongostore

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/iliyamo/hotel-booking/internal/model"
	"github.com/iliyamo/hotel-booking/internal/repository"
)

type HotelStore struct {
	coll *mongo.Collection
}

func NewHotelStore(db *mongo.Database) *HotelStore {
	return &HotelStore{coll: db.Collection(hotelsCollection)}
}

func (s *HotelStore) Create(ctx context.Context, h *model.Hotel) error {
	h.ID = newID()
	h.Amenities = model.CloneStrings(h.Amenities)
	h.Images = model.CloneStrings(h.Images)
	h.CreatedAt = now()
	h.UpdatedAt = h.CreatedAt
	_, err := s.coll.InsertOne(ctx, h)
	return err
}

func (s *HotelStore) GetByID(ctx context.Context, id string) (*model.Hotel, error) {
	return findOne[model.Hotel](ctx, s.coll, bson.M{"_id": id})
}

func (s *HotelStore) List(ctx context.Context) ([]*model.Hotel, error) {
	return findMany[model.Hotel](ctx, s.coll, bson.M{})
}

func (s *HotelStore) Update(ctx context.Context, id string, p model.HotelPatch) (*model.Hotel, error) {
	return updateOne[model.Hotel](ctx, s.coll, id, hotelSet(p))
}

// Delete removes the hotel and returns the document as it was.
func (s *HotelStore) Delete(ctx context.Context, id string) (*model.Hotel, error) {
	var h model.Hotel
	if err := s.coll.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&h); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &h, nil
}

func hotelSet(p model.HotelPatch) bson.M {
	set := bson.M{}
	if p.Name != nil {
		set["name"] = *p.Name
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.Price != nil {
		set["price"] = *p.Price
	}
	if p.Address != nil {
		set["address"] = *p.Address
	}
	if p.PhoneNumber != nil {
		set["phoneNumber"] = *p.PhoneNumber
	}
	if p.Amenities != nil {
		set["amenities"] = model.CloneStrings(*p.Amenities)
	}
	if p.Images != nil {
		set["images"] = model.CloneStrings(*p.Images)
	}
	if p.TotalRooms != nil {
		set["totalRooms"] = *p.TotalRooms
	}
	if p.IsDeleted != nil {
		set["isDeleted"] = *p.IsDeleted
	}
	return set
}
