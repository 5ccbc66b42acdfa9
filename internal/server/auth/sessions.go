package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/tuktask/internal/common"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// kv is the subset of *redis.Client the session store uses.
type kv interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// SessionStore records live sessions in Redis as session:<id> -> user id.
// A token is honoured only while its record exists.
type SessionStore struct {
	rdb kv
}

func NewSessionStore(rdb kv) *SessionStore {
	return &SessionStore{rdb: rdb}
}

// Create stores the session with the given lifetime.
func (s *SessionStore) Create(ctx context.Context, sessionID, userID string, ttl time.Duration) error {
	if err := s.rdb.Set(ctx, sessionKeyPrefix+sessionID, userID, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Lookup returns the user owning the session, or common.ErrInvalidToken if
// it was revoked or has expired.
func (s *SessionStore) Lookup(ctx context.Context, sessionID string) (string, error) {
	userID, err := s.rdb.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if errors.Is(err, redis.Nil) {
		return "", common.ErrInvalidToken
	}
	if err != nil {
		return "", fmt.Errorf("redis get: %w", err)
	}
	return userID, nil
}

// Revoke deletes the session. Revoking an unknown session is not an error.
func (s *SessionStore) Revoke(ctx context.Context, sessionID string) error {
	if err := s.rdb.Del(ctx, sessionKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
