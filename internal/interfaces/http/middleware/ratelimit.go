package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
	"go.uber.org/zap"

	"github.com/stockroom/backend/internal/interfaces/http/dto"
)

const rateLimitKeyPrefix = "stockroom:ratelimit"

// RateLimitConfig holds configuration for the rate limiter
type RateLimitConfig struct {
	// Rate is a limiter formatted rate, e.g. "300-M"
	Rate string
	// RedisClient shares counters across instances; nil keeps them in memory
	RedisClient *redis.Client
	Logger      *zap.Logger
}

// RateLimit limits requests per client IP. Rejected requests get 429 and
// every response carries the X-RateLimit-* headers.
func RateLimit(cfg RateLimitConfig) (gin.HandlerFunc, error) {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	rate, err := limiter.NewRateFromFormatted(cfg.Rate)
	if err != nil {
		return nil, fmt.Errorf("parse rate limit %q: %w", cfg.Rate, err)
	}

	var store limiter.Store
	if cfg.RedisClient != nil {
		store, err = sredis.NewStoreWithOptions(cfg.RedisClient, limiter.StoreOptions{
			Prefix: rateLimitKeyPrefix,
		})
		if err != nil {
			return nil, fmt.Errorf("create redis rate limit store: %w", err)
		}
	} else {
		store = memory.NewStoreWithOptions(limiter.StoreOptions{
			Prefix:          rateLimitKeyPrefix,
			CleanUpInterval: limiter.DefaultCleanUpInterval,
		})
	}

	log := cfg.Logger
	return mgin.NewMiddleware(limiter.New(store, rate),
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			log.Warn("Rate limit exceeded",
				zap.String("client_ip", c.ClientIP()),
				zap.String("path", c.Request.URL.Path),
			)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponse(
				dto.ErrCodeRateLimited, "Too many requests, please retry later", requestID(c),
			))
		}),
		mgin.WithErrorHandler(func(c *gin.Context, err error) {
			// Fail open when the store is unreachable
			log.Error("Rate limit store failed", zap.Error(err))
			c.Next()
		}),
	), nil
}
