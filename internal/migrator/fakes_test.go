package migrator

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/dmitrijs2005/tuktask/internal/logging"
	"github.com/dmitrijs2005/tuktask/internal/server/repositories/tasks"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeCursor walks pre-marshalled documents and then reports err.
type fakeCursor struct {
	docs   []bson.Raw
	pos    int
	err    error
	closed bool
}

func (c *fakeCursor) Next(ctx context.Context) bool {
	if ctx.Err() != nil {
		c.err = ctx.Err()
		return false
	}
	if c.pos >= len(c.docs) {
		return false
	}
	c.pos++
	return true
}

func (c *fakeCursor) Decode(v any) error { return bson.Unmarshal(c.docs[c.pos-1], v) }
func (c *fakeCursor) Err() error         { return c.err }
func (c *fakeCursor) Close(context.Context) error {
	c.closed = true
	return nil
}

type setCall struct {
	id   primitive.ObjectID
	from string
	to   primitive.ObjectID
}

// memTasks is an in-memory tasks collection keyed by _id.
type memTasks struct {
	docs map[primitive.ObjectID]bson.M

	streamErr error
	cursorErr error
	updateErr map[primitive.ObjectID]error

	// beforeUpdate lets a test mutate a document between read and write.
	beforeUpdate func(id primitive.ObjectID)

	calls  []setCall
	cursor *fakeCursor
}

var _ tasks.Repository = (*memTasks)(nil)

func newMemTasks(docs ...bson.M) *memTasks {
	m := &memTasks{docs: map[primitive.ObjectID]bson.M{}, updateErr: map[primitive.ObjectID]error{}}
	for _, d := range docs {
		m.docs[d["_id"].(primitive.ObjectID)] = d
	}
	return m
}

func (m *memTasks) Stream(ctx context.Context, _ int32) (tasks.Cursor, error) {
	if m.streamErr != nil {
		return nil, m.streamErr
	}

	ids := make([]primitive.ObjectID, 0, len(m.docs))
	for id := range m.docs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].Hex() < ids[j].Hex() })

	c := &fakeCursor{err: m.cursorErr}
	for _, id := range ids {
		d := m.docs[id]
		proj := bson.M{"_id": id}
		if v, ok := d["userId"]; ok {
			proj["userId"] = v
		}
		raw, err := bson.Marshal(proj)
		if err != nil {
			return nil, err
		}
		c.docs = append(c.docs, raw)
	}
	m.cursor = c
	return c, nil
}

func (m *memTasks) SetUserID(_ context.Context, id primitive.ObjectID, from string, to primitive.ObjectID) (bool, error) {
	m.calls = append(m.calls, setCall{id, from, to})
	if m.beforeUpdate != nil {
		m.beforeUpdate(id)
	}
	if err := m.updateErr[id]; err != nil {
		return false, err
	}
	d, ok := m.docs[id]
	if !ok {
		return false, nil
	}
	if cur, ok := d["userId"].(string); !ok || cur != from {
		return false, nil
	}
	d["userId"] = to
	return true, nil
}

type logEntry struct {
	level string
	msg   string
	args  []any
}

type recLogger struct {
	mu      *sync.Mutex
	entries *[]logEntry
}

func newRecLogger() recLogger {
	return recLogger{mu: &sync.Mutex{}, entries: &[]logEntry{}}
}

func (r recLogger) add(level, msg string, args []any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	*r.entries = append(*r.entries, logEntry{level, msg, args})
}

func (r recLogger) Debug(_ context.Context, msg string, args ...any) { r.add("debug", msg, args) }
func (r recLogger) Info(_ context.Context, msg string, args ...any)  { r.add("info", msg, args) }
func (r recLogger) Warn(_ context.Context, msg string, args ...any)  { r.add("warn", msg, args) }
func (r recLogger) Error(_ context.Context, msg string, args ...any) { r.add("error", msg, args) }
func (r recLogger) With(...any) logging.Logger                       { return r }

func (r recLogger) messages(msg string) []logEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []logEntry
	for _, e := range *r.entries {
		if e.msg == msg {
			out = append(out, e)
		}
	}
	return out
}

func argValue(args []any, key string) any {
	for i := 0; i+1 < len(args); i += 2 {
		if args[i] == key {
			return args[i+1]
		}
	}
	return nil
}

type fakeArchiver struct {
	got *Summary
	err error
}

func (f *fakeArchiver) Archive(_ context.Context, s *Summary) (string, error) {
	f.got = s
	if f.err != nil {
		return "", f.err
	}
	return ReportKey(s), nil
}

var errBoom = errors.New("boom")
