package cache

import (
	"fmt"

	"github.com/khata/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NameCacheFactory creates name caches based on configuration
type NameCacheFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// NameCacheFactoryOption is a functional option for configuring the factory
type NameCacheFactoryOption func(*NameCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) NameCacheFactoryOption {
	return func(f *NameCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to the in-memory cache
// when Redis is unavailable. Default is true.
func WithInMemoryFallback(allow bool) NameCacheFactoryOption {
	return func(f *NameCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewNameCacheFactory creates a new factory
func NewNameCacheFactory(cfg config.RedisConfig, opts ...NameCacheFactoryOption) *NameCacheFactory {
	f := &NameCacheFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateCache returns a Redis cache when Redis is enabled and reachable,
// the in-memory cache otherwise
func (f *NameCacheFactory) CreateCache() (NameCache, error) {
	if !f.redisConfig.Enabled {
		f.logger.Info("Redis disabled, using in-memory name cache")
		return NewInMemoryNameCache(), nil
	}

	store, err := NewRedisNameCache(RedisConfig{
		Host:     f.redisConfig.Host,
		Port:     f.redisConfig.Port,
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	})
	if err == nil {
		f.logger.Info("Using Redis name cache", zap.String("addr", f.redisConfig.Addr()))
		return store, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("redis required for name cache but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory name cache", zap.Error(err))
	return NewInMemoryNameCache(), nil
}
