// Package mongostore implements the user, hotel, room and booking stores
// on MongoDB.  Documents use ObjectID hex strings as _id so identifiers
// look the same to clients whichever backend is configured.
package mongostore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/iliyamo/hotel-booking/internal/repository"
)

const (
	usersCollection    = "users"
	hotelsCollection   = "hotels"
	roomsCollection    = "rooms"
	bookingsCollection = "bookings"
)

func newID() string { return primitive.NewObjectID().Hex() }

// now is truncated to milliseconds, the precision of a BSON date.
func now() time.Time { return stored(time.Now()) }

// stored converts t to the UTC, millisecond value a BSON datetime keeps.
func stored(t time.Time) time.Time { return t.UTC().Truncate(time.Millisecond) }

var byCreation = options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})

func findOne[T any](ctx context.Context, coll *mongo.Collection, filter bson.M) (*T, error) {
	var out T
	if err := coll.FindOne(ctx, filter).Decode(&out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

func findMany[T any](ctx context.Context, coll *mongo.Collection, filter bson.M) ([]*T, error) {
	cur, err := coll.Find(ctx, filter, byCreation)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []*T{}
	for cur.Next(ctx) {
		v := new(T)
		if err := cur.Decode(v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, cur.Err()
}

// updateOne applies set with $set and returns the document after the
// update.
func updateOne[T any](ctx context.Context, coll *mongo.Collection, id string, set bson.M) (*T, error) {
	set["updatedAt"] = now()
	var out T
	err := coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}
