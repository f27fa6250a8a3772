package policy

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/storefront-api/internal/domain"
)

const (
	ReasonBodyOwnerMismatch = "User ID in token does not match user ID in request body."
	ReasonViewOrder         = "You do not have permission to view this order."
	ReasonUpdateOrder       = "You do not have permission to update this order."
	ReasonDeleteOrder       = "You do not have permission to delete this order."
	ReasonUpdateProduct     = "You do not have permission to update this product."
	ReasonDeleteProduct     = "You do not have permission to delete this product."
	ReasonUpdateUser        = "You do not have permission to update this user."
	ReasonDeleteUser        = "You do not have permission to delete this user."
)

// Decision is the outcome of an ownership check.
type Decision struct {
	Allowed bool
	Reason  string
}

// Err converts a denied decision into a *domain.ForbiddenError, nil otherwise.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return &domain.ForbiddenError{Reason: d.Reason}
}

// AuthorizeMutation allows the mutation only when subject and owner are the same
// non-zero identifier. reason is reported back on denial.
func AuthorizeMutation(subject, owner primitive.ObjectID, reason string) Decision {
	if subject.IsZero() || owner.IsZero() || subject != owner {
		return Decision{Allowed: false, Reason: reason}
	}
	return Decision{Allowed: true}
}
