package storage

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultRedisTimeout = 3 * time.Second

// Redis keeps session values in Redis, optionally expiring them after TTL.
type Redis struct {
	client  *redis.Client
	ttl     time.Duration
	timeout time.Duration
}

// RedisOption customizes a Redis storage.
type RedisOption func(*Redis)

// WithTTL expires every written key after ttl (0 keeps keys forever).
func WithTTL(ttl time.Duration) RedisOption {
	return func(r *Redis) {
		r.ttl = ttl
	}
}

// WithTimeout bounds each Redis call.
func WithTimeout(timeout time.Duration) RedisOption {
	return func(r *Redis) {
		r.timeout = timeout
	}
}

// NewRedis builds a Redis-backed storage on an existing client.
func NewRedis(client *redis.Client, options ...RedisOption) *Redis {
	ret := &Redis{client: client, timeout: defaultRedisTimeout}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}

// NewRedisURL builds a Redis-backed storage from redis://[:password@]host:port[/db].
func NewRedisURL(URL string, options ...RedisOption) (*Redis, error) {
	opts, err := redis.ParseURL(URL)
	if err != nil {
		return nil, err
	}
	return NewRedis(redis.NewClient(opts), options...), nil
}

func (r *Redis) GetItem(ctx context.Context, key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (r *Redis) SetItem(ctx context.Context, key, value string) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.client.Set(ctx, key, value, r.ttl).Err()
}

func (r *Redis) RemoveItem(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	if err := r.client.Del(ctx, key).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	return nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
