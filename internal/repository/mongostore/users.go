package mongostore

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/iliyamo/hotel-booking/internal/model"
	"github.com/iliyamo/hotel-booking/internal/repository"
)

type UserStore struct {
	coll *mongo.Collection
}

func NewUserStore(db *mongo.Database) *UserStore {
	return &UserStore{coll: db.Collection(usersCollection)}
}

// Create relies on the unique email index to reject duplicates.
func (s *UserStore) Create(ctx context.Context, u *model.User) error {
	u.ID = newID()
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.CreatedAt = now()
	u.UpdatedAt = u.CreatedAt
	if _, err := s.coll.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrEmailExists
		}
		return err
	}
	return nil
}

func (s *UserStore) GetByID(ctx context.Context, id string) (*model.User, error) {
	return findOne[model.User](ctx, s.coll, bson.M{"_id": id})
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return findOne[model.User](ctx, s.coll, bson.M{"email": strings.ToLower(strings.TrimSpace(email))})
}

func (s *UserStore) List(ctx context.Context) ([]*model.User, error) {
	return findMany[model.User](ctx, s.coll, bson.M{})
}
