package migrator

import (
	"context"
	"time"

	"github.com/dmitrijs2005/tuktask/internal/dbx"
	"github.com/dmitrijs2005/tuktask/internal/logging"
	"github.com/dmitrijs2005/tuktask/internal/server/repositories/tasks"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	ExitOK    = 0
	ExitError = 1

	archiveTimeout = 30 * time.Second
)

var (
	connectMongo = dbx.ConnectMongo

	newTasksRepository = func(client *mongo.Client, database, collection string) tasks.Repository {
		return tasks.NewMongoRepository(client.Database(database), collection)
	}
)

// Job is one migration run from configuration to exit status.
type Job struct {
	cfg      *Config
	logger   logging.Logger
	archiver Archiver
}

func NewJob(cfg *Config, logger logging.Logger, archiver Archiver) *Job {
	if archiver == nil {
		archiver = nopArchiver{}
	}
	return &Job{cfg: cfg, logger: logger, archiver: archiver}
}

// Run connects, migrates and archives the report, returning the process
// exit status. Nothing is written when the connection fails.
func (j *Job) Run(ctx context.Context) int {
	database := dbx.MongoDatabaseName(j.cfg.MongoURI, j.cfg.Database)

	client, err := connectMongo(ctx, j.cfg.MongoURI, j.cfg.ConnectTimeout)
	if err != nil {
		j.logger.Error(ctx, "Connection failed", "error", err)
		return ExitError
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	repo := newTasksRepository(client, database, j.cfg.Collection)
	return j.migrate(ctx, repo, database)
}

func (j *Job) migrate(ctx context.Context, repo tasks.Repository, database string) int {
	m := New(repo, j.logger, j.cfg.BatchSize)
	summary := newSummary(database, j.cfg.Collection, m.now())

	j.logger.Info(ctx, "Migration started",
		"run_id", summary.RunID, "database", database, "collection", j.cfg.Collection)

	runErr := m.Run(ctx, summary)

	j.archive(summary)

	if runErr != nil {
		j.logger.Error(ctx, "Migration aborted", append(summary.LogArgs(), "error", runErr)...)
		return ExitError
	}

	j.logger.Info(ctx, "Migration done", summary.LogArgs()...)
	return ExitOK
}

// archive runs on a fresh context so a report is still written after the
// scan was cancelled.
func (j *Job) archive(summary *Summary) {
	ctx, cancel := context.WithTimeout(context.Background(), archiveTimeout)
	defer cancel()

	key, err := j.archiver.Archive(ctx, summary)
	if err != nil {
		j.logger.Warn(ctx, "Report archive failed", "error", err)
		return
	}
	if key != "" {
		j.logger.Info(ctx, "Report archived", "key", key)
	}
}
