package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/oksasatya/storefront-api/internal/domain/entity"
	"github.com/oksasatya/storefront-api/internal/domain/repository"
)

type ProductRepository struct {
	products collection[entity.Product]
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{products: collection[entity.Product]{coll: db.Collection(ProductsCollection)}}
}

func (r *ProductRepository) Create(ctx context.Context, p *entity.Product) error {
	if err := validate(p); err != nil {
		return err
	}
	id, err := r.products.insert(ctx, p)
	if err != nil {
		return err
	}
	p.ID = id
	return nil
}

func (r *ProductRepository) FindOne(ctx context.Context, filter bson.M) (*entity.Product, error) {
	return r.products.findOne(ctx, filter)
}

func (r *ProductRepository) Search(ctx context.Context, filter bson.M) ([]entity.ProductSummary, error) {
	return aggregate[entity.ProductSummary](ctx, r.products.coll, searchPipeline(filter))
}

func (r *ProductRepository) Categories(ctx context.Context, filter bson.M) ([]string, error) {
	values, err := r.products.coll.Distinct(ctx, "category", filter)
	if err != nil {
		return nil, mapError(err)
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected category type %T", v)
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *ProductRepository) Update(ctx context.Context, filter bson.M, patch entity.ProductPatch) (*entity.Product, error) {
	if err := validate(patch); err != nil {
		return nil, err
	}
	set, err := setDocument(patch)
	if err != nil {
		return nil, err
	}
	return r.products.findOneAndSet(ctx, filter, set)
}

func (r *ProductRepository) Deactivate(ctx context.Context, filter bson.M) (*entity.Product, error) {
	return r.products.deactivate(ctx, filter)
}

// searchPipeline matches, projects the public summary fields and orders by rating.
func searchPipeline(filter bson.M) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$project", Value: bson.D{
			{Key: "name", Value: 1},
			{Key: "_id", Value: 1},
			{Key: "description", Value: 1},
			{Key: "price", Value: 1},
			{Key: "category", Value: 1},
			{Key: "rating", Value: 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "rating", Value: -1}}}},
	}
}

var _ repository.ProductRepository = (*ProductRepository)(nil)
