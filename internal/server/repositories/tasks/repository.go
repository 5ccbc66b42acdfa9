// Package tasks gives the migration job narrow access to task documents:
// a projected cursor over every task and a guarded single-field update.
package tasks

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DefaultCollection = "tasks"
	UserIDField       = "userId"
)

// Cursor is the subset of *mongo.Cursor the migration uses.
type Cursor interface {
	Next(ctx context.Context) bool
	Decode(v any) error
	Err() error
	Close(ctx context.Context) error
}

type Repository interface {
	// Stream opens a cursor over all tasks ordered by _id, projecting only
	// _id and userId.
	Stream(ctx context.Context, batchSize int32) (Cursor, error)

	// SetUserID replaces userId on task id only if it still holds from.
	// It reports whether a document matched.
	SetUserID(ctx context.Context, id primitive.ObjectID, from string, to primitive.ObjectID) (bool, error)
}
