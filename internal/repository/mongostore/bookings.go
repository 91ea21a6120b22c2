package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/iliyamo/hotel-booking/internal/model"
)

type BookingStore struct {
	coll *mongo.Collection
}

func NewBookingStore(db *mongo.Database) *BookingStore {
	return &BookingStore{coll: db.Collection(bookingsCollection)}
}

func (s *BookingStore) Create(ctx context.Context, b *model.Booking) error {
	b.ID = newID()
	b.StartDate = stored(b.StartDate)
	b.EndDate = stored(b.EndDate)
	b.CreatedAt = now()
	b.UpdatedAt = b.CreatedAt
	_, err := s.coll.InsertOne(ctx, b)
	return err
}

func (s *BookingStore) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	return findOne[model.Booking](ctx, s.coll, bson.M{"_id": id})
}

func (s *BookingStore) ListByUser(ctx context.Context, userID string) ([]*model.Booking, error) {
	return findMany[model.Booking](ctx, s.coll, bson.M{"userId": userID})
}

// ListByRooms matches bookings whose roomId is in roomIDs.
func (s *BookingStore) ListByRooms(ctx context.Context, roomIDs []string) ([]*model.Booking, error) {
	if len(roomIDs) == 0 {
		return []*model.Booking{}, nil
	}
	return findMany[model.Booking](ctx, s.coll, bson.M{"roomId": bson.M{"$in": roomIDs}})
}

func (s *BookingStore) Update(ctx context.Context, id string, p model.BookingPatch) (*model.Booking, error) {
	set := bson.M{}
	if p.Status != nil {
		set["status"] = *p.Status
	}
	if p.StartDate != nil {
		set["startDate"] = stored(*p.StartDate)
	}
	if p.EndDate != nil {
		set["endDate"] = stored(*p.EndDate)
	}
	if p.GuestCount != nil {
		set["guestCount"] = *p.GuestCount
	}
	if p.SpecialRequests != nil {
		set["specialRequests"] = *p.SpecialRequests
	}
	if p.TotalPrice != nil {
		set["totalPrice"] = *p.TotalPrice
	}
	return updateOne[model.Booking](ctx, s.coll, id, set)
}
