package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/lushka-backend/pkg/redis"
)

type kvClient interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CartKey(prefix, sessionID string) string
}

// RedisStore keeps snapshots in Redis with a TTL matching the freshness window.
type RedisStore struct {
	client kvClient
	prefix string
	ttl    time.Duration
}

// NewRedisStore builds a Redis-backed snapshot store.
func NewRedisStore(client kvClient, prefix string, ttl time.Duration) (*RedisStore, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}, nil
}

func (s *RedisStore) Load(ctx context.Context, sessionID string) ([]byte, error) {
	val, err := s.client.Get(ctx, s.client.CartKey(s.prefix, sessionID))
	if err != nil {
		if redis.IsNil(err) {
			return nil, ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("load cart snapshot: %w", err)
	}
	return []byte(val), nil
}

func (s *RedisStore) Save(ctx context.Context, sessionID string, data []byte) error {
	if err := s.client.Set(ctx, s.client.CartKey(s.prefix, sessionID), string(data), s.ttl); err != nil {
		return fmt.Errorf("save cart snapshot: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.client.CartKey(s.prefix, sessionID)); err != nil {
		return fmt.Errorf("delete cart snapshot: %w", err)
	}
	return nil
}
