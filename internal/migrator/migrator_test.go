package migrator

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/tuktask/internal/server/repositories/tasks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func oid(t *testing.T, hex string) primitive.ObjectID {
	t.Helper()
	id, err := primitive.ObjectIDFromHex(hex)
	require.NoError(t, err)
	return id
}

func runMigrator(t *testing.T, repo *memTasks) (*Summary, recLogger, error) {
	t.Helper()
	log := newRecLogger()
	m := New(repo, log, 2)
	s := newSummary("test", "tasks", time.Now())
	err := m.Run(context.Background(), s)
	return s, log, err
}

func TestRun_MigratesStringUserID(t *testing.T) {
	taskID := oid(t, "000000000000000000000001")
	repo := newMemTasks(bson.M{"_id": taskID, "userId": "665f1c2e8b3a4d0012345678", "title": "x"})

	s, log, err := runMigrator(t, repo)
	require.NoError(t, err)

	want := oid(t, "665f1c2e8b3a4d0012345678")
	assert.Equal(t, want, repo.docs[taskID]["userId"])
	assert.Equal(t, "x", repo.docs[taskID]["title"], "other fields untouched")
	assert.Equal(t, []setCall{{taskID, "665f1c2e8b3a4d0012345678", want}}, repo.calls)

	assert.Equal(t, 1, s.Scanned)
	assert.Equal(t, 1, s.Migrated)

	migrated := log.messages("Migrated task")
	require.Len(t, migrated, 1)
	assert.Equal(t, taskID.Hex(), argValue(migrated[0].args, "task_id"))
}

func TestRun_SkipsObjectIDAndMissing(t *testing.T) {
	owner := primitive.NewObjectID()
	repo := newMemTasks(
		bson.M{"_id": oid(t, "000000000000000000000001"), "userId": owner},
		bson.M{"_id": oid(t, "000000000000000000000002")},
	)

	s, log, err := runMigrator(t, repo)
	require.NoError(t, err)

	assert.Empty(t, repo.calls, "no writes for already-typed or missing userId")
	assert.Equal(t, 2, s.Scanned)
	assert.Equal(t, 2, s.Skipped)
	assert.Empty(t, log.messages("Migrated task"))
	assert.True(t, repo.cursor.closed)
}

func TestRun_MixedCollection(t *testing.T) {
	a := oid(t, "000000000000000000000001")
	b := oid(t, "000000000000000000000002")
	c := oid(t, "000000000000000000000003")
	d := oid(t, "000000000000000000000004")
	e := oid(t, "000000000000000000000005")

	repo := newMemTasks(
		bson.M{"_id": a, "userId": "665f1c2e8b3a4d0012345678"},
		bson.M{"_id": b, "userId": "not-hex"},
		bson.M{"_id": c, "userId": primitive.NewObjectID()},
		bson.M{"_id": d, "userId": "665f1c2e8b3a4d00123456ff"},
		bson.M{"_id": e, "userId": "665f1c2e8b3a4d00123456aa"},
	)
	repo.updateErr[d] = errBoom

	s, log, err := runMigrator(t, repo)
	require.NoError(t, err, "per-record failures do not abort the scan")

	assert.Equal(t, 5, s.Scanned)
	assert.Equal(t, 2, s.Migrated)
	assert.Equal(t, 1, s.Skipped)
	assert.Equal(t, 2, s.Failed)
	assert.Equal(t, s.Scanned, s.Migrated+s.Skipped+s.Failed)

	require.Len(t, s.Failures, 2)
	assert.Equal(t, b.Hex(), s.Failures[0].TaskID)
	assert.Equal(t, "not-hex", s.Failures[0].UserID)
	assert.Equal(t, d.Hex(), s.Failures[1].TaskID)
	assert.Contains(t, s.Failures[1].Reason, "boom")

	assert.Equal(t, "not-hex", repo.docs[b]["userId"], "invalid value left as is")
	assert.IsType(t, primitive.ObjectID{}, repo.docs[e]["userId"], "scan continued past the failed update")
	assert.Len(t, log.messages("Migrated task"), 2)
}

func TestRun_IsIdempotent(t *testing.T) {
	repo := newMemTasks(
		bson.M{"_id": oid(t, "000000000000000000000001"), "userId": "665f1c2e8b3a4d0012345678"},
		bson.M{"_id": oid(t, "000000000000000000000002"), "userId": "665f1c2e8b3a4d00123456ff"},
	)

	first, _, err := runMigrator(t, repo)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Migrated)

	repo.calls = nil
	second, _, err := runMigrator(t, repo)
	require.NoError(t, err)
	assert.Zero(t, second.Migrated)
	assert.Equal(t, 2, second.Skipped)
	assert.Empty(t, repo.calls)
}

func TestRun_ConcurrentChangeIsSkipped(t *testing.T) {
	id := oid(t, "000000000000000000000001")
	repo := newMemTasks(bson.M{"_id": id, "userId": "665f1c2e8b3a4d0012345678"})
	replacement := primitive.NewObjectID()
	repo.beforeUpdate = func(got primitive.ObjectID) {
		repo.docs[got]["userId"] = replacement
	}

	s, _, err := runMigrator(t, repo)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Skipped)
	assert.Zero(t, s.Migrated)
	assert.Equal(t, replacement, repo.docs[id]["userId"])
}

func TestRun_CursorFailure(t *testing.T) {
	repo := newMemTasks(bson.M{"_id": oid(t, "000000000000000000000001"), "userId": "665f1c2e8b3a4d0012345678"})
	repo.cursorErr = errBoom

	s, _, err := runMigrator(t, repo)
	require.ErrorIs(t, err, errBoom)
	assert.Equal(t, 1, s.Migrated, "work done before the failure is kept")
	assert.Equal(t, "boom", s.Aborted)
	assert.False(t, s.FinishedAt.IsZero())
}

func TestRun_StreamFailure(t *testing.T) {
	repo := newMemTasks()
	repo.streamErr = errBoom

	s, _, err := runMigrator(t, repo)
	require.ErrorIs(t, err, errBoom)
	assert.Zero(t, s.Scanned)
}

func TestRun_Cancelled(t *testing.T) {
	repo := newMemTasks(bson.M{"_id": oid(t, "000000000000000000000001"), "userId": "665f1c2e8b3a4d0012345678"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := New(repo, newRecLogger(), 10)
	err := m.Run(ctx, newSummary("test", "tasks", time.Now()))
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, repo.calls)
}

func TestRun_UndecodableDocument(t *testing.T) {
	repo := newMemTasks()
	raw, err := bson.Marshal(bson.M{"_id": "string-id", "userId": "665f1c2e8b3a4d0012345678"})
	require.NoError(t, err)

	c := &fakeCursor{docs: []bson.Raw{raw}}
	s := newSummary("test", "tasks", time.Now())
	m := New(&cursorRepo{memTasks: repo, c: c}, newRecLogger(), 10)

	require.NoError(t, m.Run(context.Background(), s))
	assert.Equal(t, 1, s.Failed)
	assert.True(t, strings.HasPrefix(s.Failures[0].Reason, "decode:"))
}

type cursorRepo struct {
	*memTasks
	c *fakeCursor
}

func (r *cursorRepo) Stream(context.Context, int32) (tasks.Cursor, error) { return r.c, nil }
