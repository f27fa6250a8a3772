package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/storefront-api/internal/domain"
	"github.com/oksasatya/storefront-api/internal/domain/entity"
)

func TestMatches(t *testing.T) {
	day := time.Date(2023, 1, 15, 10, 0, 0, 0, time.UTC)
	doc := bson.M{"name": "Laptop Pro", "category": "Electronics", "active": true, "createdAt": day}

	cases := []struct {
		name   string
		filter bson.M
		want   bool
	}{
		{"empty", bson.M{}, true},
		{"equal", bson.M{"active": true}, true},
		{"not equal", bson.M{"active": false}, false},
		{"regex fold", bson.M{"name": primitive.Regex{Pattern: "laptop", Options: "i"}}, true},
		{"regex case", bson.M{"name": primitive.Regex{Pattern: "laptop"}}, false},
		{"or second branch", bson.M{"$or": bson.A{bson.M{"category": "Books"}, bson.M{"name": primitive.Regex{Pattern: "pro", Options: "i"}}}}, true},
		{"or no branch", bson.M{"$or": bson.A{bson.M{"category": "Books"}}}, false},
		{"range in", bson.M{"createdAt": bson.M{"$gte": day.AddDate(0, 0, -1), "$lt": day.AddDate(0, 0, 1)}}, true},
		{"range out", bson.M{"createdAt": bson.M{"$gte": day.AddDate(0, 0, 1)}}, false},
		{"missing field", bson.M{"email": "a@b.c"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, matches(doc, tc.filter))
		})
	}
}

func TestUserRepository_UpdateKeepsEmailUnique(t *testing.T) {
	ctx := context.Background()
	r := NewUserRepository()
	ada := &entity.User{Name: "Ada", Email: "ada@example.com", Password: "h", Active: true}
	bob := &entity.User{Name: "Bob", Email: "bob@example.com", Password: "h", Active: true}
	require.NoError(t, r.Create(ctx, ada))
	require.NoError(t, r.Create(ctx, bob))

	taken := "ada@example.com"
	_, err := r.Update(ctx, bson.M{"_id": bob.ID, "active": true}, entity.UserPatch{Email: &taken})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, 0, r.Calls().Updates)

	got, err := r.Update(ctx, bson.M{"_id": ada.ID, "active": true}, entity.UserPatch{Email: &taken})
	require.NoError(t, err)
	assert.Equal(t, taken, got.Email)

	fresh := "bobby@example.com"
	got, err = r.Update(ctx, bson.M{"_id": bob.ID, "active": true}, entity.UserPatch{Email: &fresh})
	require.NoError(t, err)
	assert.Equal(t, fresh, got.Email)
}
