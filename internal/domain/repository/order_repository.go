package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/oksasatya/storefront-api/internal/domain/entity"
)

type OrderRepository interface {
	Create(ctx context.Context, o *entity.Order) error
	FindOne(ctx context.Context, filter bson.M) (*entity.Order, error)
	Find(ctx context.Context, filter bson.M) ([]entity.Order, error)
	Update(ctx context.Context, filter bson.M, patch entity.OrderPatch) (*entity.Order, error)
	Deactivate(ctx context.Context, filter bson.M) (*entity.Order, error)
}
