package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/gestor/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
)

// RedisInvalidator evicts read-model cache keys from a shared Redis. Suitable
// for multi-instance deployments where every instance must see the eviction.
type RedisInvalidator struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisInvalidator connects to Redis and returns an invalidator backed by it
func NewRedisInvalidator(cfg config.RedisConfig) (*RedisInvalidator, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisInvalidator{
		client:    client,
		keyPrefix: "gestor:cache:",
	}, nil
}

// NewRedisInvalidatorWithClient creates an invalidator over an existing client.
// Useful for tests and for sharing a client across components.
func NewRedisInvalidatorWithClient(client *redis.Client, keyPrefix string) *RedisInvalidator {
	if keyPrefix == "" {
		keyPrefix = "gestor:cache:"
	}
	return &RedisInvalidator{client: client, keyPrefix: keyPrefix}
}

// Invalidate deletes the given keys
func (r *RedisInvalidator) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	prefixed := make([]string, len(keys))
	for i, key := range keys {
		prefixed[i] = r.keyPrefix + key
	}
	return r.client.Del(ctx, prefixed...).Err()
}

// Close releases the underlying Redis connection
func (r *RedisInvalidator) Close() error {
	return r.client.Close()
}
