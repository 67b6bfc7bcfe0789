package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stockroom/backend/internal/infrastructure/config"
)

// TokenBlacklist revokes access tokens before they expire.
type TokenBlacklist interface {
	// Revoke blacklists a token id until ttl elapses
	Revoke(ctx context.Context, jti string, ttl time.Duration) error

	// IsRevoked reports whether a token id is blacklisted
	IsRevoked(ctx context.Context, jti string) (bool, error)

	// RevokeUser rejects every token issued to the user up to now
	RevokeUser(ctx context.Context, userID int64, ttl time.Duration) error

	// IsUserRevoked reports whether a token issued at issuedAt predates the user's revocation
	IsUserRevoked(ctx context.Context, userID int64, issuedAt time.Time) (bool, error)
}

// RedisTokenBlacklist implements TokenBlacklist using Redis
type RedisTokenBlacklist struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisTokenBlacklist connects to Redis and verifies the connection
func NewRedisTokenBlacklist(cfg config.RedisConfig) (*RedisTokenBlacklist, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 2,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis for token blacklist: %w", err)
	}

	return NewRedisTokenBlacklistWithClient(client), nil
}

// NewRedisTokenBlacklistWithClient creates a token blacklist with an existing Redis client
func NewRedisTokenBlacklistWithClient(client *redis.Client) *RedisTokenBlacklist {
	return &RedisTokenBlacklist{
		client:    client,
		keyPrefix: "stockroom:token:",
	}
}

func (b *RedisTokenBlacklist) jtiKey(jti string) string {
	return b.keyPrefix + "jti:" + jti
}

func (b *RedisTokenBlacklist) userKey(userID int64) string {
	return b.keyPrefix + "user:" + strconv.FormatInt(userID, 10)
}

// Revoke adds a token id to the blacklist
func (b *RedisTokenBlacklist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if err := b.client.Set(ctx, b.jtiKey(jti), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// IsRevoked checks whether a token id is blacklisted
func (b *RedisTokenBlacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	exists, err := b.client.Exists(ctx, b.jtiKey(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token blacklist: %w", err)
	}
	return exists > 0, nil
}

// RevokeUser stores the current unix time as the user's revocation point
func (b *RedisTokenBlacklist) RevokeUser(ctx context.Context, userID int64, ttl time.Duration) error {
	if err := b.client.Set(ctx, b.userKey(userID), time.Now().Unix(), ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke user tokens: %w", err)
	}
	return nil
}

// IsUserRevoked compares a token's issue time with the user's revocation point
func (b *RedisTokenBlacklist) IsUserRevoked(ctx context.Context, userID int64, issuedAt time.Time) (bool, error) {
	revokedAt, err := b.client.Get(ctx, b.userKey(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check user token revocation: %w", err)
	}
	return issuedAt.Unix() <= revokedAt, nil
}

// Close closes the Redis client
func (b *RedisTokenBlacklist) Close() error {
	return b.client.Close()
}

var _ TokenBlacklist = (*RedisTokenBlacklist)(nil)

// InMemoryTokenBlacklist keeps revocations in process memory.
// Revocations are not shared between instances.
type InMemoryTokenBlacklist struct {
	mu      sync.Mutex
	tokens  map[string]time.Time // jti -> expiry
	revoked map[int64]time.Time  // user id -> revocation time
}

// NewInMemoryTokenBlacklist creates a new in-memory token blacklist
func NewInMemoryTokenBlacklist() *InMemoryTokenBlacklist {
	return &InMemoryTokenBlacklist{
		tokens:  make(map[string]time.Time),
		revoked: make(map[int64]time.Time),
	}
}

// Revoke adds a token id to the blacklist
func (b *InMemoryTokenBlacklist) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tokens[jti] = time.Now().Add(ttl)
	return nil
}

// IsRevoked checks whether a token id is blacklisted and not yet expired
func (b *InMemoryTokenBlacklist) IsRevoked(_ context.Context, jti string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	expiry, ok := b.tokens[jti]
	if !ok {
		return false, nil
	}
	if time.Now().After(expiry) {
		delete(b.tokens, jti)
		return false, nil
	}
	return true, nil
}

// RevokeUser rejects every token issued to the user up to now
func (b *InMemoryTokenBlacklist) RevokeUser(_ context.Context, userID int64, _ time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.revoked[userID] = time.Now()
	return nil
}

// IsUserRevoked compares a token's issue time with the user's revocation point
func (b *InMemoryTokenBlacklist) IsUserRevoked(_ context.Context, userID int64, issuedAt time.Time) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	revokedAt, ok := b.revoked[userID]
	if !ok {
		return false, nil
	}
	return !issuedAt.After(revokedAt), nil
}

var _ TokenBlacklist = (*InMemoryTokenBlacklist)(nil)
