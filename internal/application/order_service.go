package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/storefront-api/internal/domain"
	"github.com/oksasatya/storefront-api/internal/domain/entity"
	"github.com/oksasatya/storefront-api/internal/domain/policy"
	repo "github.com/oksasatya/storefront-api/internal/domain/repository"
	"github.com/oksasatya/storefront-api/pkg/events"
)

const orderOwnerField = "user"

type OrderService struct {
	Repo     repo.OrderRepository
	Products repo.ProductRepository
	Logger   *logrus.Logger
	Events   EventPublisher
}

func NewOrderService(repo repo.OrderRepository, products repo.ProductRepository, logger *logrus.Logger, pub EventPublisher) *OrderService {
	return &OrderService{Repo: repo, Products: products, Logger: logger, Events: pub}
}

type CreateOrderInput struct {
	UserID    string
	ProductID string
	Quantity  int
	Comment   string
	Rating    int
}

// Create places an order for subject against an active product.
func (s *OrderService) Create(ctx context.Context, subject primitive.ObjectID, in CreateOrderInput) (*entity.Order, error) {
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
	productID, err := policy.ToRecordID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if s.Products != nil {
		if _, err := s.Products.FindOne(ctx, policy.ByID(productID)); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.Validationf("product %s is not available", productID.Hex())
			}
			return nil, err
		}
	}

	ts := now()
	o := &entity.Order{
		UserID:    owner,
		ProductID: productID,
		Quantity:  in.Quantity,
		Comment:   in.Comment,
		Rating:    in.Rating,
		OrderDate: ts,
		Status:    entity.OrderStatusCreated,
		Active:    true,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	if err := s.Repo.Create(ctx, o); err != nil {
		return nil, err
	}
	publish(ctx, s.Events, s.Logger, events.New(events.OrderCreated, o.ID.Hex(), subject.Hex(), map[string]any{
		"product_id": productID.Hex(),
		"quantity":   o.Quantity,
	}))
	return o, nil
}

// Get returns an order visible to its owner only.
func (s *OrderService) Get(ctx context.Context, subject, id primitive.ObjectID) (*entity.Order, error) {
	o, err := s.Repo.FindOne(ctx, policy.ByID(id))
	if err != nil {
		return nil, err
	}
	if err := policy.AuthorizeMutation(subject, o.UserID, policy.ReasonViewOrder).Err(); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *OrderService) Search(ctx context.Context, q policy.OrderQuery) ([]entity.Order, error) {
	filter, err := policy.OrderSearchFilter(q)
	if err != nil {
		return nil, err
	}
	return s.Repo.Find(ctx, filter)
}

// Update changes an order while it is still in the created status.
func (s *OrderService) Update(ctx context.Context, subject, id primitive.ObjectID, patch entity.OrderPatch) (*entity.Order, error) {
	current, err := s.Repo.FindOne(ctx, policy.ByID(id))
	if err != nil {
		return nil, err
	}
	if err := policy.AuthorizeMutation(subject, current.UserID, policy.ReasonUpdateOrder).Err(); err != nil {
		return nil, err
	}
	if current.Status != entity.OrderStatusCreated {
		return nil, ErrOrderLocked
	}
	o, err := s.Repo.Update(ctx, updatableOrder(id, subject), patch)
	if err != nil {
		return nil, err
	}
	publish(ctx, s.Events, s.Logger, events.New(events.OrderUpdated, id.Hex(), subject.Hex(), map[string]any{"status": string(o.Status)}))
	return o, nil
}

func (s *OrderService) Delete(ctx context.Context, subject, id primitive.ObjectID) (*entity.Order, error) {
	current, err := s.Repo.FindOne(ctx, policy.ByID(id))
	if err != nil {
		return nil, err
	}
	if err := policy.AuthorizeMutation(subject, current.UserID, policy.ReasonDeleteOrder).Err(); err != nil {
		return nil, err
	}
	o, err := s.Repo.Deactivate(ctx, policy.Owned(id, orderOwnerField, subject))
	if err != nil {
		return nil, err
	}
	publish(ctx, s.Events, s.Logger, events.New(events.OrderDeactivated, id.Hex(), subject.Hex(), nil))
	return o, nil
}

// updatableOrder matches an active order of owner that has not left the created status.
func updatableOrder(id, owner primitive.ObjectID) bson.M {
	return policy.Active(bson.M{
		policy.FieldID:  id,
		orderOwnerField: owner,
		"status":        entity.OrderStatusCreated,
	})
}
