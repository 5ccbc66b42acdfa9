package migrator

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/tuktask/internal/logging"
	"github.com/dmitrijs2005/tuktask/internal/server/models"
	"github.com/dmitrijs2005/tuktask/internal/server/repositories/tasks"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Migrator struct {
	tasks     tasks.Repository
	logger    logging.Logger
	batchSize int32
	now       func() time.Time
}

func New(repo tasks.Repository, logger logging.Logger, batchSize int32) *Migrator {
	return &Migrator{
		tasks:     repo,
		logger:    logger,
		batchSize: batchSize,
		now:       time.Now,
	}
}

// Run scans every task once. Per-record problems are counted in the
// summary and never stop the scan; an error is returned only when the
// cursor cannot be opened or fails mid-scan (including cancellation).
func (m *Migrator) Run(ctx context.Context, summary *Summary) error {
	defer func() { summary.FinishedAt = m.now().UTC() }()

	cur, err := m.tasks.Stream(ctx, m.batchSize)
	if err != nil {
		return err
	}
	defer func() { _ = cur.Close(context.Background()) }()

	for cur.Next(ctx) {
		summary.Scanned++

		var ref models.TaskRef
		if err := cur.Decode(&ref); err != nil {
			m.logger.Error(ctx, "Undecodable task", "error", err)
			summary.recordFailure(Failure{Reason: fmt.Sprintf("decode: %v", err)})
			continue
		}

		m.migrateOne(ctx, ref, summary)
	}

	if err := cur.Err(); err != nil {
		summary.Aborted = err.Error()
		return fmt.Errorf("cursor: %w", err)
	}

	return nil
}

func (m *Migrator) migrateOne(ctx context.Context, ref models.TaskRef, summary *Summary) {
	taskID := ref.ID.Hex()

	if ref.UserID.Type != bsontype.String {
		summary.Skipped++
		return
	}

	raw, _ := ref.UserID.StringValueOK()

	userID, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		m.logger.Warn(ctx, "Invalid userId", "task_id", taskID, "user_id", raw)
		summary.recordFailure(Failure{TaskID: taskID, UserID: raw, Reason: "userId is not a 24-character hex ObjectID"})
		return
	}

	matched, err := m.tasks.SetUserID(ctx, ref.ID, raw, userID)
	if err != nil {
		m.logger.Error(ctx, "Update failed", "task_id", taskID, "error", err)
		summary.recordFailure(Failure{TaskID: taskID, UserID: raw, Reason: err.Error()})
		return
	}

	if !matched {
		// userId changed between read and write
		m.logger.Warn(ctx, "Task changed concurrently, left untouched", "task_id", taskID)
		summary.Skipped++
		return
	}

	summary.Migrated++
	m.logger.Info(ctx, "Migrated task", "task_id", taskID)
}
