package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// RateCounter counts hits per key inside a fixed window
type RateCounter interface {
	Hit(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RedisRateCounter keeps per-window counters in Redis
type RedisRateCounter struct {
	redisClient *redis.Client
}

// NewRedisRateCounter creates a Redis-backed rate counter
func NewRedisRateCounter(redisClient *redis.Client) *RedisRateCounter {
	return &RedisRateCounter{redisClient: redisClient}
}

// Hit increments key and starts its window on the first hit
func (r *RedisRateCounter) Hit(ctx context.Context, key string, window time.Duration) (int64, error) {
	pipe := r.redisClient.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

// RateLimit allows limit requests per client IP per minute. When the
// counter is unavailable requests are let through.
func RateLimit(limit int, counter RateCounter, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit <= 0 {
			c.Next()
			return
		}

		key := fmt.Sprintf("rate_limit:%s", c.ClientIP())

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		current, err := counter.Hit(ctx, key, time.Minute)
		if err != nil {
			logger.WithError(err).Warn("Rate limiter unavailable, allowing request")
			c.Next()
			return
		}

		remaining := int64(limit) - current
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if current > int64(limit) {
			c.Header("Retry-After", "60")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"detail": "Rate limit exceeded",
			})
			return
		}

		c.Next()
	}
}
