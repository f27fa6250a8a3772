package application

import (
	"context"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/storefront-api/internal/domain/entity"
	"github.com/oksasatya/storefront-api/internal/domain/policy"
	repo "github.com/oksasatya/storefront-api/internal/domain/repository"
	"github.com/oksasatya/storefront-api/pkg/events"
	"github.com/oksasatya/storefront-api/pkg/helpers"
)

const productOwnerField = "user_id"

type ProductService struct {
	Repo    repo.ProductRepository
	ES      *elasticsearch.Client
	ESIndex string
	Logger  *logrus.Logger
	Events  EventPublisher
}

func NewProductService(repo repo.ProductRepository, es *elasticsearch.Client, esIndex string, logger *logrus.Logger, pub EventPublisher) *ProductService {
	return &ProductService{Repo: repo, ES: es, ESIndex: esIndex, Logger: logger, Events: pub}
}

type CreateProductInput struct {
	Name        string
	UserID      string
	Description string
	Price       float64
	Category    string
	Rating      float64
}

// Create stores a product owned by subject. A body owner that differs from the
// subject is refused before anything is written.
func (s *ProductService) Create(ctx context.Context, subject primitive.ObjectID, in CreateProductInput) (*entity.Product, error) {
	owner := subject
	if in.UserID != "" {
		id, err := policy.ToRecordID(in.UserID)
		if err != nil {
			return nil, err
		}
		if err := policy.AuthorizeMutation(subject, id, policy.ReasonBodyOwnerMismatch).Err(); err != nil {
			return nil, err
		}
		owner = id
	}
	ts := now()
	p := &entity.Product{
		Name:        in.Name,
		UserID:      owner,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		Rating:      in.Rating,
		Active:      true,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.indexProduct(ctx, p)
	publish(ctx, s.Events, s.Logger, events.New(events.ProductCreated, p.ID.Hex(), subject.Hex(), map[string]any{"category": p.Category}))
	return p, nil
}

func (s *ProductService) Get(ctx context.Context, id primitive.ObjectID) (*entity.Product, error) {
	return s.Repo.FindOne(ctx, policy.ByID(id))
}

func (s *ProductService) Search(ctx context.Context, q policy.ProductQuery) ([]entity.ProductSummary, error) {
	filter, err := policy.ProductSearchFilter(q)
	if err != nil {
		return nil, err
	}
	return s.Repo.Search(ctx, filter)
}

// Categories lists the distinct categories of a user's active products.
func (s *ProductService) Categories(ctx context.Context, userID string) ([]string, error) {
	owner, err := policy.ToRecordID(userID)
	if err != nil {
		return nil, err
	}
	return s.Repo.Categories(ctx, policy.Active(bson.M{productOwnerField: owner}))
}

func (s *ProductService) Update(ctx context.Context, subject, id primitive.ObjectID, patch entity.ProductPatch) (*entity.Product, error) {
	current, err := s.Repo.FindOne(ctx, policy.ByID(id))
	if err != nil {
		return nil, err
	}
	if err := policy.AuthorizeMutation(subject, current.UserID, policy.ReasonUpdateProduct).Err(); err != nil {
		return nil, err
	}
	p, err := s.Repo.Update(ctx, policy.Owned(id, productOwnerField, subject), patch)
	if err != nil {
		return nil, err
	}
	s.indexProduct(ctx, p)
	return p, nil
}

func (s *ProductService) Delete(ctx context.Context, subject, id primitive.ObjectID) (*entity.Product, error) {
	current, err := s.Repo.FindOne(ctx, policy.ByID(id))
	if err != nil {
		return nil, err
	}
	if err := policy.AuthorizeMutation(subject, current.UserID, policy.ReasonDeleteProduct).Err(); err != nil {
		return nil, err
	}
	p, err := s.Repo.Deactivate(ctx, policy.Owned(id, productOwnerField, subject))
	if err != nil {
		return nil, err
	}
	s.unindexProduct(ctx, id)
	publish(ctx, s.Events, s.Logger, events.New(events.ProductDeactivated, id.Hex(), subject.Hex(), nil))
	return p, nil
}

func (s *ProductService) indexProduct(ctx context.Context, p *entity.Product) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	doc := map[string]any{
		"id":          p.ID.Hex(),
		"user_id":     p.UserID.Hex(),
		"name":        p.Name,
		"description": p.Description,
		"category":    p.Category,
		"price":       p.Price,
		"rating":      p.Rating,
		"updated_at":  p.UpdatedAt.Format(time.RFC3339Nano),
	}
	c, cancel := context.WithTimeout(ctx, sideEffectTimeout)
	defer cancel()
	if err := helpers.ESIndexDocument(c, s.ES, s.ESIndex, p.ID.Hex(), doc); err != nil && s.Logger != nil {
		helpers.LogWarn(s.Logger, "es index failed", err, logrus.Fields{"product_id": p.ID.Hex()})
	}
}

func (s *ProductService) unindexProduct(ctx context.Context, id primitive.ObjectID) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	c, cancel := context.WithTimeout(ctx, sideEffectTimeout)
	defer cancel()
	if err := helpers.ESDeleteDocument(c, s.ES, s.ESIndex, id.Hex()); err != nil && s.Logger != nil {
		helpers.LogWarn(s.Logger, "es delete failed", err, logrus.Fields{"product_id": id.Hex()})
	}
}
