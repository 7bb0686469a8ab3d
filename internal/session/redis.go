package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

// redisKeyPrefix namespaces session entries in a shared Redis instance.
const redisKeyPrefix = "yalah:session:"

// RedisVault stores session entries in Redis. Useful when several daemon
// instances on one host should share a single login.
type RedisVault struct {
	client *redis.Client
}

// NewRedisVault creates a Redis-backed vault from an address or redis:// URL.
func NewRedisVault(addr string) (*RedisVault, error) {
	var opts *redis.Options
	if strings.Contains(addr, "://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("invalid redis URL %q: %w", addr, err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: addr}
	}
	return &RedisVault{client: redis.NewClient(opts)}, nil
}

// NewRedisVaultFromClient wraps an existing client; used by tests.
func NewRedisVaultFromClient(client *redis.Client) *RedisVault {
	return &RedisVault{client: client}
}

// Get returns the stored value for key or ErrKeyNotFound.
func (v *RedisVault) Get(ctx context.Context, key string) (string, error) {
	value, err := v.client.Get(ctx, redisKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("reading session key %q: %w", key, err)
	}
	return value, nil
}

// Set stores value under key. Entries carry no TTL; the session lives until
// an explicit logout, same as the file backend.
func (v *RedisVault) Set(ctx context.Context, key, value string) error {
	if err := v.client.Set(ctx, redisKeyPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("writing session key %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is a no-op.
func (v *RedisVault) Delete(ctx context.Context, key string) error {
	if err := v.client.Del(ctx, redisKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("deleting session key %q: %w", key, err)
	}
	return nil
}

// Close releases the underlying Redis connection.
func (v *RedisVault) Close() error {
	return v.client.Close()
}
