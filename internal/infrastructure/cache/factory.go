package cache

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/stockroom/backend/internal/domain/shared"
	"github.com/stockroom/backend/internal/infrastructure/config"
)

// LockerFactory creates lockers based on configuration
type LockerFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// LockerFactoryOption is a functional option for configuring the factory
type LockerFactoryOption func(*LockerFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) LockerFactoryOption {
	return func(f *LockerFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to an in-memory locker when Redis is unavailable.
// Default is true (allow fallback).
func WithInMemoryFallback(allow bool) LockerFactoryOption {
	return func(f *LockerFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewLockerFactory creates a new factory
func NewLockerFactory(cfg config.RedisConfig, opts ...LockerFactoryOption) *LockerFactory {
	f := &LockerFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateRedisLocker creates a Redis-based locker
func (f *LockerFactory) CreateRedisLocker() (*RedisLocker, error) {
	locker, err := NewRedisLocker(RedisConfig{
		Host:     f.redisConfig.Host,
		Port:     f.redisConfig.Port,
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis locker: %w", err)
	}
	return locker, nil
}

// CreateLocker creates a Redis locker when Redis is enabled and reachable.
// Otherwise it falls back to an in-memory locker if fallback is allowed.
// WARNING: in-memory leases are not shared across process instances.
func (f *LockerFactory) CreateLocker() (shared.Locker, error) {
	if !f.redisConfig.Enabled {
		f.logger.Info("Redis disabled, using in-memory locker")
		return NewInMemoryLocker(), nil
	}

	locker, err := f.CreateRedisLocker()
	if err == nil {
		f.logger.Info("using Redis locker", zap.String("addr", f.redisConfig.Addr()))
		return locker, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for identifier locking but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory locker. "+
		"Concurrent instances may compute the same next identifier.",
		zap.Error(err),
	)
	return NewInMemoryLocker(), nil
}
