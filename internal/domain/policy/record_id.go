package policy

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/storefront-api/internal/domain"
)

// ToRecordID normalizes a path or query identifier into the store's native id type.
func ToRecordID(s string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(s))
	if err != nil {
		return primitive.NilObjectID, domain.Validationf("invalid id %q", s)
	}
	return id, nil
}
