package repomanager

import (
	"context"

	"github.com/dmitrijs2005/tuktask/internal/logging"
	"github.com/dmitrijs2005/tuktask/internal/server/repositories/users"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type indexer interface {
	EnsureIndexes(ctx context.Context) error
}

// MongoRepositoryManager vends MongoDB-backed repositories from one client.
type MongoRepositoryManager struct {
	client *mongo.Client
	users  *users.MongoRepository
	logger logging.Logger
}

func NewMongoRepositoryManager(client *mongo.Client, database string, logger logging.Logger) *MongoRepositoryManager {
	return &MongoRepositoryManager{
		client: client,
		users:  users.NewMongoRepository(client.Database(database)),
		logger: logger,
	}
}

func (m *MongoRepositoryManager) Users() users.Repository {
	return m.users
}

// RunMigrations creates the unique email index. Failure is logged and
// tolerated; duplicate detection then relies on the lookup alone.
func (m *MongoRepositoryManager) RunMigrations(ctx context.Context) error {
	ensureIndexes(ctx, m.users, m.logger)
	return nil
}

func ensureIndexes(ctx context.Context, ix indexer, logger logging.Logger) {
	if err := ix.EnsureIndexes(ctx); err != nil {
		logger.Warn(ctx, "could not create user indexes", "error", err)
	}
}

func (m *MongoRepositoryManager) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

func (m *MongoRepositoryManager) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
