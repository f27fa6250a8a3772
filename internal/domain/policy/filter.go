package policy

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	FieldID     = "_id"
	FieldActive = "active"
)

// Active returns a copy of base that additionally requires active == true.
func Active(base bson.M) bson.M {
	out := make(bson.M, len(base)+1)
	for k, v := range base {
		out[k] = v
	}
	out[FieldActive] = true
	return out
}

// ByID matches a single active record.
func ByID(id primitive.ObjectID) bson.M {
	return Active(bson.M{FieldID: id})
}

// Owned matches a single active record that belongs to owner. Used for
// update-by-filter so the ownership check and the write happen in one operation.
func Owned(id primitive.ObjectID, ownerField string, owner primitive.ObjectID) bson.M {
	return Active(bson.M{FieldID: id, ownerField: owner})
}

// Deactivation is the update document for a soft delete.
func Deactivation() bson.M {
	return bson.M{FieldActive: false}
}
