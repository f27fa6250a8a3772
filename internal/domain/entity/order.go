package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	OrderStatusCreated   OrderStatus = "created"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order references the buying user and the product. Rating 0 means "not rated yet".
type Order struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	UserID    primitive.ObjectID `json:"user" bson:"user" validate:"required"`
	ProductID primitive.ObjectID `json:"product" bson:"product" validate:"required"`
	Quantity  int                `json:"quantity" bson:"quantity" validate:"required,gte=1"`
	Comment   string             `json:"comment,omitempty" bson:"comment,omitempty"`
	Rating    int                `json:"rating" bson:"rating" validate:"omitempty,min=1,max=5"`
	OrderDate time.Time          `json:"orderDate" bson:"orderDate"`
	Status    OrderStatus        `json:"status" bson:"status" validate:"oneof=created completed cancelled"`
	Active    bool               `json:"active" bson:"active"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type OrderPatch struct {
	Quantity *int         `json:"quantity" bson:"quantity,omitempty" validate:"omitempty,gte=1"`
	Comment  *string      `json:"comment" bson:"comment,omitempty"`
	Rating   *int         `json:"rating" bson:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	Status   *OrderStatus `json:"status" bson:"status,omitempty" validate:"omitempty,oneof=created completed cancelled"`
}
