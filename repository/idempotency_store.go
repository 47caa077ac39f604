package repository

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// IdempotencyStore remembers which order a checkout idempotency key produced
// so a retried request returns the original order instead of committing a
// second one.
type IdempotencyStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, orderID string, ttl time.Duration) error
}

type RedisIdempotencyStore struct {
	client *redis.Client
}

func NewRedisIdempotencyStore(client *redis.Client) *RedisIdempotencyStore {
	return &RedisIdempotencyStore{client: client}
}

func (r *RedisIdempotencyStore) getKey(key string) string {
	return "idem:checkout:" + key
}

// Get returns the order ID recorded for the key, or "" if unseen.
func (r *RedisIdempotencyStore) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, r.getKey(key)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (r *RedisIdempotencyStore) Set(ctx context.Context, key, orderID string, ttl time.Duration) error {
	return r.client.Set(ctx, r.getKey(key), orderID, ttl).Err()
}
