package cache

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache is a Redis-backed ResultCache. Each region maps to a
// namespaced key prefix so regions can be inspected or flushed
// independently.
type RedisCache struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// RedisCacheConfig holds configuration for the Redis result cache.
type RedisCacheConfig struct {
	Addr      string        // Redis address (e.g., "127.0.0.1:6379")
	Password  string        // Redis password (empty if none)
	DB        int           // Redis database number (use different DB per app)
	KeyPrefix string        // Namespace prefix for all cache keys
	TTL       time.Duration // Entry lifetime; 0 = no expiry
}

// NewRedisCache connects to Redis and returns a result cache.
func NewRedisCache(cfg RedisCacheConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	keyPrefix := cfg.KeyPrefix
	if keyPrefix == "" {
		keyPrefix = "statsyncer:reportcache"
	}

	log.Printf("[RedisCache] Connected to Redis DB:%d, prefix:%s, ttl:%v", cfg.DB, keyPrefix, cfg.TTL)
	return &RedisCache{
		client:    client,
		keyPrefix: keyPrefix,
		ttl:       cfg.TTL,
	}, nil
}

func (c *RedisCache) redisKey(region, key string) string {
	return c.keyPrefix + ":" + region + ":" + key
}

// Get returns the cached value and whether it was present.
func (c *RedisCache) Get(ctx context.Context, region, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, c.redisKey(region, key)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set stores a value under region+key with the configured TTL.
func (c *RedisCache) Set(ctx context.Context, region, key string, value []byte) error {
	return c.client.Set(ctx, c.redisKey(region, key), value, c.ttl).Err()
}

// Close closes the Redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
