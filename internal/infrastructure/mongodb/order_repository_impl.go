package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/oksasatya/storefront-api/internal/domain/entity"
	"github.com/oksasatya/storefront-api/internal/domain/repository"
)

type OrderRepository struct {
	orders collection[entity.Order]
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{orders: collection[entity.Order]{coll: db.Collection(OrdersCollection)}}
}

func (r *OrderRepository) Create(ctx context.Context, o *entity.Order) error {
	if err := validate(o); err != nil {
		return err
	}
	id, err := r.orders.insert(ctx, o)
	if err != nil {
		return err
	}
	o.ID = id
	return nil
}

func (r *OrderRepository) FindOne(ctx context.Context, filter bson.M) (*entity.Order, error) {
	return r.orders.findOne(ctx, filter)
}

func (r *OrderRepository) Find(ctx context.Context, filter bson.M) ([]entity.Order, error) {
	return r.orders.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

func (r *OrderRepository) Update(ctx context.Context, filter bson.M, patch entity.OrderPatch) (*entity.Order, error) {
	if err := validate(patch); err != nil {
		return nil, err
	}
	set, err := setDocument(patch)
	if err != nil {
		return nil, err
	}
	return r.orders.findOneAndSet(ctx, filter, set)
}

func (r *OrderRepository) Deactivate(ctx context.Context, filter bson.M) (*entity.Order, error) {
	return r.orders.deactivate(ctx, filter)
}

var _ repository.OrderRepository = (*OrderRepository)(nil)
