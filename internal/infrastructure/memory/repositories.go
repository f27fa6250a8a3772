package memory

import (
	"context"
	"errors"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/storefront-api/internal/domain"
	"github.com/oksasatya/storefront-api/internal/domain/entity"
	repo "github.com/oksasatya/storefront-api/internal/domain/repository"
	"github.com/oksasatya/storefront-api/pkg/validation"
)

type UserRepository struct {
	t table[entity.User]
}

func NewUserRepository() *UserRepository {
	return &UserRepository{t: table[entity.User]{fields: func(u *entity.User) bson.M {
		return bson.M{"_id": u.ID, "email": u.Email, "name": u.Name, "active": u.Active}
	}}}
}

func (r *UserRepository) Calls() Counters { return r.t.counters() }

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	if err := validate(u); err != nil {
		return err
	}
	if _, err := r.t.first(bson.M{"email": u.Email}); err == nil {
		return domain.Validationf("email %s already exists", u.Email)
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	cp := *u
	r.t.insert(&cp)
	return nil
}

func (r *UserRepository) FindOne(_ context.Context, filter bson.M) (*entity.User, error) {
	return r.t.first(filter)
}

func (r *UserRepository) Find(_ context.Context, filter bson.M) ([]entity.User, error) {
	out := r.t.all(filter)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *UserRepository) Update(_ context.Context, filter bson.M, p entity.UserPatch) (*entity.User, error) {
	if err := validate(p); err != nil {
		return nil, err
	}
	if p.Email != nil {
		target, err := r.t.first(filter)
		if err != nil {
			return nil, err
		}
		if other, err := r.t.first(bson.M{"email": *p.Email}); err == nil && other.ID != target.ID {
			return nil, domain.Validationf("email %s already exists", *p.Email)
		}
	}
	r.t.mu.Lock()
	r.t.calls.Updates++
	r.t.mu.Unlock()
	return r.t.modify(filter, func(u *entity.User) {
		setString(&u.Name, p.Name)
		setString(&u.Email, p.Email)
		setString(&u.Password, p.Password)
		setString(&u.Phone, p.Phone)
		setString(&u.Address, p.Address)
		u.UpdatedAt = now()
	})
}

func (r *UserRepository) Deactivate(_ context.Context, filter bson.M) (*entity.User, error) {
	r.t.mu.Lock()
	r.t.calls.Deactivates++
	r.t.mu.Unlock()
	return r.t.modify(filter, func(u *entity.User) {
		u.Active = false
		u.UpdatedAt = now()
	})
}

type ProductRepository struct {
	t table[entity.Product]
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{t: table[entity.Product]{fields: func(p *entity.Product) bson.M {
		return bson.M{"_id": p.ID, "user_id": p.UserID, "name": p.Name, "category": p.Category, "active": p.Active}
	}}}
}

func (r *ProductRepository) Calls() Counters { return r.t.counters() }

func (r *ProductRepository) Create(_ context.Context, p *entity.Product) error {
	if err := validate(p); err != nil {
		return err
	}
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	cp := *p
	r.t.insert(&cp)
	return nil
}

func (r *ProductRepository) FindOne(_ context.Context, filter bson.M) (*entity.Product, error) {
	return r.t.first(filter)
}

func (r *ProductRepository) Search(_ context.Context, filter bson.M) ([]entity.ProductSummary, error) {
	rows := r.t.all(filter)
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Rating > rows[j].Rating })
	out := make([]entity.ProductSummary, 0, len(rows))
	for _, p := range rows {
		out = append(out, entity.ProductSummary{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			Category:    p.Category,
			Rating:      p.Rating,
		})
	}
	return out, nil
}

func (r *ProductRepository) Categories(_ context.Context, filter bson.M) ([]string, error) {
	seen := map[string]struct{}{}
	out := make([]string, 0)
	for _, p := range r.t.all(filter) {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	sort.Strings(out)
	return out, nil
}

func (r *ProductRepository) Update(_ context.Context, filter bson.M, p entity.ProductPatch) (*entity.Product, error) {
	if err := validate(p); err != nil {
		return nil, err
	}
	r.t.mu.Lock()
	r.t.calls.Updates++
	r.t.mu.Unlock()
	return r.t.modify(filter, func(cur *entity.Product) {
		setString(&cur.Name, p.Name)
		setString(&cur.Description, p.Description)
		setString(&cur.Category, p.Category)
		if p.Price != nil {
			cur.Price = *p.Price
		}
		if p.Rating != nil {
			cur.Rating = *p.Rating
		}
		cur.UpdatedAt = now()
	})
}

func (r *ProductRepository) Deactivate(_ context.Context, filter bson.M) (*entity.Product, error) {
	r.t.mu.Lock()
	r.t.calls.Deactivates++
	r.t.mu.Unlock()
	return r.t.modify(filter, func(p *entity.Product) {
		p.Active = false
		p.UpdatedAt = now()
	})
}

type OrderRepository struct {
	t table[entity.Order]
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{t: table[entity.Order]{fields: func(o *entity.Order) bson.M {
		return bson.M{
			"_id":       o.ID,
			"user":      o.UserID,
			"product":   o.ProductID,
			"status":    o.Status,
			"active":    o.Active,
			"createdAt": o.CreatedAt,
		}
	}}}
}

func (r *OrderRepository) Calls() Counters { return r.t.counters() }

func (r *OrderRepository) Create(_ context.Context, o *entity.Order) error {
	if err := validate(o); err != nil {
		return err
	}
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	cp := *o
	r.t.insert(&cp)
	return nil
}

func (r *OrderRepository) FindOne(_ context.Context, filter bson.M) (*entity.Order, error) {
	return r.t.first(filter)
}

func (r *OrderRepository) Find(_ context.Context, filter bson.M) ([]entity.Order, error) {
	out := r.t.all(filter)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *OrderRepository) Update(_ context.Context, filter bson.M, p entity.OrderPatch) (*entity.Order, error) {
	if err := validate(p); err != nil {
		return nil, err
	}
	r.t.mu.Lock()
	r.t.calls.Updates++
	r.t.mu.Unlock()
	return r.t.modify(filter, func(o *entity.Order) {
		if p.Quantity != nil {
			o.Quantity = *p.Quantity
		}
		setString(&o.Comment, p.Comment)
		if p.Rating != nil {
			o.Rating = *p.Rating
		}
		if p.Status != nil {
			o.Status = *p.Status
		}
		o.UpdatedAt = now()
	})
}

func (r *OrderRepository) Deactivate(_ context.Context, filter bson.M) (*entity.Order, error) {
	r.t.mu.Lock()
	r.t.calls.Deactivates++
	r.t.mu.Unlock()
	return r.t.modify(filter, func(o *entity.Order) {
		o.Active = false
		o.UpdatedAt = now()
	})
}

func validate(v any) error {
	if err := validation.Struct(v); err != nil {
		return domain.NewValidationError(errors.New(validation.Message(err)))
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

var (
	_ repo.UserRepository    = (*UserRepository)(nil)
	_ repo.ProductRepository = (*ProductRepository)(nil)
	_ repo.OrderRepository   = (*OrderRepository)(nil)
)
