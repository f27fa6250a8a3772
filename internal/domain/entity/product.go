package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name" validate:"required"`
	UserID      primitive.ObjectID `json:"user_id" bson:"user_id" validate:"required"`
	Description string             `json:"description" bson:"description" validate:"required"`
	Price       float64            `json:"price" bson:"price" validate:"gte=0"`
	Category    string             `json:"category" bson:"category" validate:"required"`
	Rating      float64            `json:"rating" bson:"rating" validate:"rating5"`
	Active      bool               `json:"active" bson:"active"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// ProductSummary is the projection returned by product search.
type ProductSummary struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description" bson:"description"`
	Price       float64            `json:"price" bson:"price"`
	Category    string             `json:"category" bson:"category"`
	Rating      float64            `json:"rating" bson:"rating"`
}

// ProductPatch lists the fields an owner may change. Owner and active flag are not patchable.
type ProductPatch struct {
	Name        *string  `json:"name" bson:"name,omitempty" validate:"omitempty,min=1"`
	Description *string  `json:"description" bson:"description,omitempty" validate:"omitempty,min=1"`
	Price       *float64 `json:"price" bson:"price,omitempty" validate:"omitempty,gte=0"`
	Category    *string  `json:"category" bson:"category,omitempty" validate:"omitempty,min=1"`
	Rating      *float64 `json:"rating" bson:"rating,omitempty" validate:"omitempty,rating5"`
}
