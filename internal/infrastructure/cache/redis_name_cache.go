package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/khata/backend/internal/domain/partner"
	"github.com/redis/go-redis/v9"
)

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// RedisNameCache implements NameCache using Redis
type RedisNameCache struct {
	client     *redis.Client
	ownsClient bool
	keyPrefix  string
}

// NewRedisNameCache connects to Redis and verifies the connection
func NewRedisNameCache(cfg RedisConfig) (*RedisNameCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisNameCache{client: client, ownsClient: true, keyPrefix: "khata:"}, nil
}

// NewRedisNameCacheWithClient creates a cache on an existing client.
// The caller keeps ownership of the client.
func NewRedisNameCacheWithClient(client *redis.Client, keyPrefix string) *RedisNameCache {
	if keyPrefix == "" {
		keyPrefix = "khata:"
	}
	return &RedisNameCache{client: client, keyPrefix: keyPrefix}
}

// Get returns the cached name of an entity
func (c *RedisNameCache) Get(ctx context.Context, role partner.Role, id int64) (string, bool, error) {
	name, err := c.client.Get(ctx, c.keyPrefix+nameKey(role, id)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get name from cache: %w", err)
	}
	return name, true, nil
}

// Set stores the name of an entity
func (c *RedisNameCache) Set(ctx context.Context, role partner.Role, id int64, name string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultNameTTL
	}
	if err := c.client.Set(ctx, c.keyPrefix+nameKey(role, id), name, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set name in cache: %w", err)
	}
	return nil
}

// Invalidate drops the cached name of an entity
func (c *RedisNameCache) Invalidate(ctx context.Context, role partner.Role, id int64) error {
	if err := c.client.Del(ctx, c.keyPrefix+nameKey(role, id)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate name: %w", err)
	}
	return nil
}

// Ping checks the Redis connection
func (c *RedisNameCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the client if the cache created it
func (c *RedisNameCache) Close() error {
	if !c.ownsClient {
		return nil
	}
	return c.client.Close()
}

var _ NameCache = (*RedisNameCache)(nil)
