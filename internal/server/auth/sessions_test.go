package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/tuktask/internal/common"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeKV struct {
	data map[string]string
	ttl  map[string]time.Duration
	err  error
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: map[string]string{}, ttl: map[string]time.Duration{}}
}

func (f *fakeKV) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	if f.err != nil {
		return redis.NewStatusResult("", f.err)
	}
	f.data[key] = value.(string)
	f.ttl[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeKV) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.err != nil {
		return redis.NewStringResult("", f.err)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeKV) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	if f.err != nil {
		return redis.NewIntResult(0, f.err)
	}
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func TestSessionStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	kv := newFakeKV()
	s := NewSessionStore(kv)

	require.NoError(t, s.Create(ctx, "s1", "u1", time.Hour))
	assert.Equal(t, "u1", kv.data["session:s1"])
	assert.Equal(t, time.Hour, kv.ttl["session:s1"])

	userID, err := s.Lookup(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)

	require.NoError(t, s.Revoke(ctx, "s1"))
	_, err = s.Lookup(ctx, "s1")
	assert.ErrorIs(t, err, common.ErrInvalidToken)

	assert.NoError(t, s.Revoke(ctx, "s1"), "revoking twice is fine")
}

func TestSessionStore_BackendErrors(t *testing.T) {
	ctx := context.Background()
	kv := newFakeKV()
	kv.err = errors.New("connection refused")
	s := NewSessionStore(kv)

	assert.ErrorContains(t, s.Create(ctx, "s1", "u1", time.Hour), "connection refused")

	_, err := s.Lookup(ctx, "s1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrInvalidToken)

	assert.Error(t, s.Revoke(ctx, "s1"))
}
