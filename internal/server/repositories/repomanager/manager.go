// Package repomanager selects the storage backend from the DSN and hands
// out repositories bound to it.
package repomanager

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/tuktask/internal/dbx"
	"github.com/dmitrijs2005/tuktask/internal/logging"
	"github.com/dmitrijs2005/tuktask/internal/server/repositories/users"
)

var ErrUnsupportedBackend = errors.New("unsupported storage backend")

type RepositoryManager interface {
	// RunMigrations brings the schema (or indexes) up to date.
	RunMigrations(ctx context.Context) error
	Users() users.Repository
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Backend returns "mongo" or "postgres" for dsn.
func Backend(dsn string) (string, error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return "", fmt.Errorf("parse storage dsn: %w", err)
	}
	switch strings.ToLower(u.Scheme) {
	case "mongodb", "mongodb+srv":
		return "mongo", nil
	case "postgres", "postgresql":
		return "postgres", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedBackend, u.Scheme)
	}
}

var (
	connectMongo = dbx.ConnectMongo
	openPostgres = dbx.OpenPostgres
)

// New connects to the store named by dsn. database overrides the Mongo
// database name; it is ignored for Postgres.
func New(ctx context.Context, dsn, database string, timeout time.Duration, logger logging.Logger) (RepositoryManager, error) {
	backend, err := Backend(dsn)
	if err != nil {
		return nil, err
	}

	switch backend {
	case "mongo":
		client, err := connectMongo(ctx, dsn, timeout)
		if err != nil {
			return nil, err
		}
		return NewMongoRepositoryManager(client, dbx.MongoDatabaseName(dsn, database), logger), nil
	default:
		db, err := openPostgres(ctx, dsn, timeout)
		if err != nil {
			return nil, err
		}
		return NewPostgresRepositoryManager(db), nil
	}
}
