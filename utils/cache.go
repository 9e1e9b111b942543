// File: utils/cache.go
package utils

import (
	"context"
	"fmt"
	"time"

	"calmwave/config"

	"github.com/go-redis/redis/v8"
)

// RedisClients holds one client per logical Redis database.
type RedisClients struct {
	// Cache is the generic cache client (rating summaries).
	Cache *redis.Client
	// Auth caches verified ID-token sessions.
	Auth *redis.Client
}

func newRedisClient(db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis db %d: %w", db, err)
	}
	return client, nil
}

// InitRedis connects the cache and auth clients.
func InitRedis() (*RedisClients, error) {
	cache, err := newRedisClient(config.AppConfig.RedisCacheDB)
	if err != nil {
		return nil, err
	}
	authCache, err := newRedisClient(config.AppConfig.RedisAuthDB)
	if err != nil {
		_ = cache.Close()
		return nil, err
	}
	return &RedisClients{Cache: cache, Auth: authCache}, nil
}

func (r *RedisClients) Close() {
	_ = r.Cache.Close()
	_ = r.Auth.Close()
}

// RedisCache adapts a redis client to the small byte cache used by services and middleware.
type RedisCache struct {
	Client *redis.Client
	Prefix string
}

// Get returns the cached value; found is false on a miss.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := c.Client.Get(ctx, c.Prefix+key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.Client.Set(ctx, c.Prefix+key, value, ttl).Err()
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.Client.Del(ctx, c.Prefix+key).Err()
}
