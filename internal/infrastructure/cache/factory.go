package cache

import (
	appshared "github.com/gestor/backend/internal/application/shared"
	"github.com/gestor/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewInvalidator creates a cache invalidator based on configuration. When
// Redis is enabled but unreachable it falls back to the in-memory cache so a
// cache outage never takes the service down with it.
func NewInvalidator(cfg config.RedisConfig, logger *zap.Logger) appshared.CacheInvalidator {
	if !cfg.Enabled {
		return NewInMemoryInvalidator()
	}

	invalidator, err := NewRedisInvalidator(cfg)
	if err != nil {
		logger.Warn("Redis unavailable, falling back to in-memory cache. "+
			"Evictions will not propagate across instances.",
			zap.String("addr", cfg.Addr()),
			zap.Error(err))
		return NewInMemoryInvalidator()
	}

	logger.Info("using Redis cache invalidator", zap.String("addr", cfg.Addr()))
	return invalidator
}
