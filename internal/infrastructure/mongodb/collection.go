package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/oksasatya/storefront-api/internal/domain"
	"github.com/oksasatya/storefront-api/pkg/validation"
)

// collection wraps a driver collection with typed decode for documents of type T.
type collection[T any] struct {
	coll *mongo.Collection
}

func (c collection[T]) insert(ctx context.Context, doc *T) (primitive.ObjectID, error) {
	res, err := c.coll.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, mapError(err)
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}

func (c collection[T]) findOne(ctx context.Context, filter bson.M) (*T, error) {
	var out T
	if err := c.coll.FindOne(ctx, filter).Decode(&out); err != nil {
		return nil, mapError(err)
	}
	return &out, nil
}

func (c collection[T]) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]T, error) {
	cur, err := c.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, mapError(err)
	}
	out := []T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, mapError(err)
	}
	return out, nil
}

// findOneAndSet applies $set atomically to the single document matching filter and
// returns the document after the update.
func (c collection[T]) findOneAndSet(ctx context.Context, filter bson.M, set bson.M) (*T, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var out T
	if err := c.coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&out); err != nil {
		return nil, mapError(err)
	}
	return &out, nil
}

func (c collection[T]) deactivate(ctx context.Context, filter bson.M) (*T, error) {
	return c.findOneAndSet(ctx, filter, bson.M{"active": false, "updatedAt": now()})
}

func aggregate[S any](ctx context.Context, coll *mongo.Collection, pipeline mongo.Pipeline) ([]S, error) {
	cur, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, mapError(err)
	}
	out := []S{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, mapError(err)
	}
	return out, nil
}

// setDocument turns a patch struct into a $set document. Nil pointer fields are
// skipped through their omitempty bson tags; updatedAt is always refreshed.
func setDocument(patch any) (bson.M, error) {
	raw, err := bson.Marshal(patch)
	if err != nil {
		return nil, err
	}
	set := bson.M{}
	if err := bson.Unmarshal(raw, &set); err != nil {
		return nil, err
	}
	set["updatedAt"] = now()
	return set, nil
}

// validate runs the store-layer validation rules declared on the entity tags.
func validate(v any) error {
	if err := validation.Struct(v); err != nil {
		return domain.NewValidationError(errors.New(validation.Message(err)))
	}
	return nil
}

func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return domain.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return domain.NewValidationError(fmt.Errorf("duplicate key: %w", err))
	default:
		return err
	}
}

func bsonKeys(pairs ...any) bson.D {
	keys := bson.D{}
	for i := 0; i+1 < len(pairs); i += 2 {
		keys = append(keys, bson.E{Key: pairs[i].(string), Value: pairs[i+1]})
	}
	return keys
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
