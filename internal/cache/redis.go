package cache

import (
	"context"
	"time"

	"staffing-backend/internal/config"

	"github.com/redis/go-redis/v9"
)

var client *redis.Client

// Init initializes the Redis connection. On failure the client stays nil and
// every helper in this package degrades to a no-op.
func Init(cfg *config.Config) error {
	if cfg.Redis.Addr == "" {
		return nil
	}
	client = redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		client = nil
		return err
	}
	return nil
}

// GetClient returns the Redis client, nil when Redis is unavailable
func GetClient() *redis.Client {
	return client
}

// Close releases the connection pool
func Close() {
	if client != nil {
		client.Close()
		client = nil
	}
}

// GetCached returns cached data for a key
func GetCached(ctx context.Context, key string) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// SetCached stores data with a TTL
func SetCached(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if client == nil {
		return
	}
	client.Set(ctx, key, data, ttl)
}

// InvalidateKeys removes specific cache keys
func InvalidateKeys(ctx context.Context, keys ...string) {
	if client == nil || len(keys) == 0 {
		return
	}
	client.Del(ctx, keys...)
}

// IsHealthy returns true if Redis connection is working
func IsHealthy(ctx context.Context) bool {
	if client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return client.Ping(ctx).Err() == nil
}

// KV is the byte cache used by the store decorators.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration)
	Del(ctx context.Context, keys ...string)
}

type redisKV struct{}

// Redis returns a KV backed by the package client. It is safe to use when Redis is down.
func Redis() KV { return redisKV{} }

func (redisKV) Get(ctx context.Context, key string) ([]byte, bool) { return GetCached(ctx, key) }
func (redisKV) Set(ctx context.Context, key string, data []byte, ttl time.Duration) {
	SetCached(ctx, key, data, ttl)
}
func (redisKV) Del(ctx context.Context, keys ...string) { InvalidateKeys(ctx, keys...) }
