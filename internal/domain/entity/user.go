package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a storefront account. Password holds a bcrypt hash and is never serialized.
type User struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name" validate:"required"`
	Email     string             `json:"email" bson:"email" validate:"required,email"`
	Password  string             `json:"-" bson:"password" validate:"required"`
	Phone     string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Address   string             `json:"address,omitempty" bson:"address,omitempty"`
	Active    bool               `json:"active" bson:"active"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// PublicUser is the subset of a user that may leave the service, e.g. inside a token.
type PublicUser struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:      u.ID.Hex(),
		Name:    u.Name,
		Email:   u.Email,
		Phone:   u.Phone,
		Address: u.Address,
	}
}

// UserPatch lists the fields a user may change on their own account.
type UserPatch struct {
	Name     *string `json:"name" bson:"name,omitempty" validate:"omitempty,min=1"`
	Email    *string `json:"email" bson:"email,omitempty" validate:"omitempty,email"`
	Password *string `json:"password" bson:"password,omitempty" validate:"omitempty,min=1"`
	Phone    *string `json:"phone" bson:"phone,omitempty"`
	Address  *string `json:"address" bson:"address,omitempty"`
}
