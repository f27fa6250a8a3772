package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/oksasatya/storefront-api/internal/domain/entity"
)

type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	FindOne(ctx context.Context, filter bson.M) (*entity.Product, error)
	// Search runs the match/project/sort aggregation and returns the projected summaries.
	Search(ctx context.Context, filter bson.M) ([]entity.ProductSummary, error)
	Categories(ctx context.Context, filter bson.M) ([]string, error)
	Update(ctx context.Context, filter bson.M, patch entity.ProductPatch) (*entity.Product, error)
	Deactivate(ctx context.Context, filter bson.M) (*entity.Product, error)
}
