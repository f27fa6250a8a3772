package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/oksasatya/storefront-api/internal/domain/entity"
	"github.com/oksasatya/storefront-api/internal/domain/repository"
)

type UserRepository struct {
	users collection[entity.User]
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{users: collection[entity.User]{coll: db.Collection(UsersCollection)}}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	if err := validate(u); err != nil {
		return err
	}
	id, err := r.users.insert(ctx, u)
	if err != nil {
		return err
	}
	u.ID = id
	return nil
}

func (r *UserRepository) FindOne(ctx context.Context, filter bson.M) (*entity.User, error) {
	return r.users.findOne(ctx, filter)
}

func (r *UserRepository) Find(ctx context.Context, filter bson.M) ([]entity.User, error) {
	return r.users.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
}

func (r *UserRepository) Update(ctx context.Context, filter bson.M, patch entity.UserPatch) (*entity.User, error) {
	if err := validate(patch); err != nil {
		return nil, err
	}
	set, err := setDocument(patch)
	if err != nil {
		return nil, err
	}
	return r.users.findOneAndSet(ctx, filter, set)
}

func (r *UserRepository) Deactivate(ctx context.Context, filter bson.M) (*entity.User, error) {
	return r.users.deactivate(ctx, filter)
}

var _ repository.UserRepository = (*UserRepository)(nil)
