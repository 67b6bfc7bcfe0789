package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/stockroom/backend/internal/domain/shared"
)

// lockPollInterval is how often a blocked Acquire retries
const lockPollInterval = 25 * time.Millisecond

// releaseScript deletes the key only while it still holds the caller's token
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker implements shared.Locker with SET NX leases.
// This is suitable for distributed deployments where several instances
// allocate identifiers against the same database.
type RedisLocker struct {
	client    *redis.Client
	keyPrefix string
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisLocker creates a new Redis-based locker and checks the connection
func NewRedisLocker(cfg RedisConfig) (*RedisLocker, error) {
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

	return NewRedisLockerWithClient(client, ""), nil
}

// NewRedisLockerWithClient creates a locker with an existing Redis client
func NewRedisLockerWithClient(client *redis.Client, keyPrefix string) *RedisLocker {
	if keyPrefix == "" {
		keyPrefix = "stockroom:lock:"
	}
	return &RedisLocker{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Acquire takes the lease on key, retrying until wait elapses or ctx is done.
// The lease expires after ttl even if release is never called.
func (l *RedisLocker) Acquire(ctx context.Context, key string, ttl, wait time.Duration) (func(), error) {
	redisKey := l.keyPrefix + key
	token := uuid.NewString()
	deadline := time.Now().Add(wait)

	for {
		ok, err := l.client.SetNX(ctx, redisKey, token, ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire lock %q: %w", key, err)
		}
		if ok {
			return func() {
				// ctx may already be cancelled when the caller releases
				_ = releaseScript.Run(context.Background(), l.client, []string{redisKey}, token).Err()
			}, nil
		}
		if err := waitForRetry(ctx, deadline); err != nil {
			return nil, err
		}
	}
}

// Close closes the Redis client
func (l *RedisLocker) Close() error {
	return l.client.Close()
}

// GetClient returns the underlying Redis client for sharing with other components
func (l *RedisLocker) GetClient() *redis.Client {
	return l.client
}

// waitForRetry sleeps one poll interval, failing with ErrLockBusy past the deadline
func waitForRetry(ctx context.Context, deadline time.Time) error {
	if !time.Now().Before(deadline) {
		return shared.ErrLockBusy
	}
	timer := time.NewTimer(lockPollInterval)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return shared.ErrLockBusy
		}
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Ensure RedisLocker implements Locker
var _ shared.Locker = (*RedisLocker)(nil)
