package models

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TaskRef is the projection of a task document the user reference
// migration needs. UserID keeps the raw BSON value so its stored type can
// be inspected; older documents hold the owner id as a hex string instead
// of an ObjectID.
type TaskRef struct {
	ID     primitive.ObjectID `bson:"_id"`
	UserID bson.RawValue      `bson:"userId"`
}
