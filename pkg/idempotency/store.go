// Package idempotency records one-shot claims on request or event keys in redis.
package idempotency

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore claims keys with SET NX so only the first caller proceeds
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "idem"
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(scope, key string) string {
	return fmt.Sprintf("%s:%s:%s", s.prefix, scope, key)
}

const (
	markerProcessing = "processing"
	markerDone       = "done"
)

// Claim returns true when the key was not claimed before. The claim holds a processing
// marker that expires after ttl unless Complete replaces it.
func (s *RedisStore) Claim(ctx context.Context, scope, key string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, s.key(scope, key), markerProcessing, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to claim idempotency key: %w", err)
	}
	return ok, nil
}

// Complete marks the key as done for ttl
func (s *RedisStore) Complete(ctx context.Context, scope, key string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(scope, key), markerDone, ttl).Err(); err != nil {
		return fmt.Errorf("failed to complete idempotency key: %w", err)
	}
	return nil
}

// Completed reports whether the key finished, as opposed to still processing or unclaimed
func (s *RedisStore) Completed(ctx context.Context, scope, key string) (bool, error) {
	v, err := s.client.Get(ctx, s.key(scope, key)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read idempotency key: %w", err)
	}
	return v == markerDone, nil
}

// Release drops a claim so the key can be processed again
func (s *RedisStore) Release(ctx context.Context, scope, key string) error {
	if err := s.client.Del(ctx, s.key(scope, key)).Err(); err != nil {
		return fmt.Errorf("failed to release idempotency key: %w", err)
	}
	return nil
}
