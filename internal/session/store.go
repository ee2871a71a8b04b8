// Package session provides per-visitor server-side storage surviving
// across requests for the duration of a shopping session. Values are
// JSON-encoded under visitor-scoped redis keys, so concurrent requests
// from different visitors never share state.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultTTL is how long a visitor session survives without activity.
const DefaultTTL = 24 * time.Hour

// Store is the session abstraction the decision engine and cart service
// depend on. Implementations must tolerate total absence of the backing
// storage: reads report absent, writes are no-ops, neither errors.
type Store interface {
	Get(ctx context.Context, sessionID, field string, dest interface{}) (bool, error)
	Set(ctx context.Context, sessionID, field string, value interface{}) error
	Delete(ctx context.Context, sessionID, field string) error
}

// NewSessionID returns a fresh visitor session identifier.
func NewSessionID() string {
	return uuid.NewString()
}

func sessionKey(sessionID, field string) string {
	return fmt.Sprintf("session:%s:%s", sessionID, field)
}

// RedisStore keeps session fields in redis with a sliding TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, sessionID, field string, dest interface{}) (bool, error) {
	if s.client == nil {
		return false, nil
	}
	val, err := s.client.Get(ctx, sessionKey(sessionID, field)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, err
	}
	return true, nil
}

func (s *RedisStore) Set(ctx context.Context, sessionID, field string, value interface{}) error {
	if s.client == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKey(sessionID, field), data, s.ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, sessionID, field string) error {
	if s.client == nil {
		return nil
	}
	return s.client.Del(ctx, sessionKey(sessionID, field)).Err()
}
