package cache

import (
	"context"
	"time"

	"github.com/newslens/newslens-backend/internal/pkg/redis"
)

// RedisStore adapts the shared redis client to the Store interface,
// for multi-instance deployments where a process-local cache would
// fragment hit rates.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore wraps client; prefix namespaces all keys.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, s.prefix+key)
	if err != nil {
		if redis.IsNil(err) {
			return "", ErrMiss
		}
		return "", err
	}
	return val, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.client.Set(ctx, s.prefix+key, value, ttl)
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	_, err := s.client.Del(ctx, s.prefix+key)
	return err
}
