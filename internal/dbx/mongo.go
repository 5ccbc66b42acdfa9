package dbx

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

// DefaultMongoDatabase is used when the URI names no database.
const DefaultMongoDatabase = "test"

// ConnectMongo creates a client and pings the primary.
func ConnectMongo(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	opts := options.Client().ApplyURI(uri).SetServerSelectionTimeout(timeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, nil
}

// MongoDatabaseName returns explicit if set, otherwise the database named
// in the URI path, otherwise DefaultMongoDatabase.
func MongoDatabaseName(uri, explicit string) string {
	if explicit != "" {
		return explicit
	}
	cs, err := connstring.ParseAndValidate(uri)
	if err != nil || cs.Database == "" {
		return DefaultMongoDatabase
	}
	return cs.Database
}
