package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/oksasatya/storefront-api/internal/domain/entity"
)

// UserRepository defines the store operations for user documents.
// Lookups that match nothing return domain.ErrNotFound.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	FindOne(ctx context.Context, filter bson.M) (*entity.User, error)
	Find(ctx context.Context, filter bson.M) ([]entity.User, error)
	Update(ctx context.Context, filter bson.M, patch entity.UserPatch) (*entity.User, error)
	Deactivate(ctx context.Context, filter bson.M) (*entity.User, error)
}
