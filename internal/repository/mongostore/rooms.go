package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/iliyamo/hotel-booking/internal/model"
)

type RoomStore struct {
	coll *mongo.Collection
}

func NewRoomStore(db *mongo.Database) *RoomStore {
	return &RoomStore{coll: db.Collection(roomsCollection)}
}

func (s *RoomStore) Create(ctx context.Context, r *model.Room) error {
	r.ID = newID()
	r.Features = model.CloneStrings(r.Features)
	r.CreatedAt = now()
	r.UpdatedAt = r.CreatedAt
	_, err := s.coll.InsertOne(ctx, r)
	return err
}

func (s *RoomStore) GetByID(ctx context.Context, id string) (*model.Room, error) {
	return findOne[model.Room](ctx, s.coll, bson.M{"_id": id})
}

func (s *RoomStore) List(ctx context.Context) ([]*model.Room, error) {
	return findMany[model.Room](ctx, s.coll, bson.M{})
}

func (s *RoomStore) ListByHotel(ctx context.Context, hotelID string) ([]*model.Room, error) {
	return findMany[model.Room](ctx, s.coll, bson.M{"hotelId": hotelID})
}

func (s *RoomStore) Update(ctx context.Context, id string, p model.RoomPatch) (*model.Room, error) {
	set := bson.M{}
	if p.HotelID != nil {
		set["hotelId"] = *p.HotelID
	}
	if p.RoomType != nil {
		set["roomType"] = *p.RoomType
	}
	if p.Price != nil {
		set["price"] = *p.Price
	}
	if p.Features != nil {
		set["features"] = model.CloneStrings(*p.Features)
	}
	if p.IsAvailable != nil {
		set["isAvailable"] = *p.IsAvailable
	}
	return updateOne[model.Room](ctx, s.coll, id, set)
}
