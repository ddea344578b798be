package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/salonsys/scheduling-service/pkg/logger"
)

// limiters is the per-process fallback used when Redis is unavailable
// (development mode), keyed by client IP.
type limiters struct {
	byKey map[string]*rate.Limiter
	rps   rate.Limit
	burst int
}

// RateLimit returns a rate-limiting middleware. When redisClient is non-nil
// it enforces a sliding-window limit shared across replicas via a Redis
// sorted set; when nil it falls back to an in-process token bucket per
// client IP, so the optimizer's /optimize endpoint (the one call expensive
// enough to matter) cannot be hammered even without Redis configured.
func RateLimit(redisClient *redis.Client, requestsPerMinute int, log *logger.Logger) gin.HandlerFunc {
	if redisClient == nil {
		l := &limiters{byKey: make(map[string]*rate.Limiter), rps: rate.Limit(float64(requestsPerMinute) / 60.0), burst: requestsPerMinute}
		return func(c *gin.Context) {
			key := c.ClientIP()
			lim, ok := l.byKey[key]
			if !ok {
				lim = rate.NewLimiter(l.rps, l.burst)
				l.byKey[key] = lim
			}
			if !lim.Allow() {
				c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
				c.Abort()
				return
			}
			c.Next()
		}
	}

	window := time.Minute
	return func(c *gin.Context) {
		key := fmt.Sprintf("rate_limit:%s", c.ClientIP())
		allowed, err := checkRedisLimit(c.Request.Context(), redisClient, key, requestsPerMinute, window)
		if err != nil {
			log.Error("rate limit check failed, allowing request", "error", err)
			c.Next()
			return
		}
		if !allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func checkRedisLimit(ctx context.Context, client *redis.Client, key string, limit int, window time.Duration) (bool, error) {
	now := time.Now()
	pipe := client.Pipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", now.Add(-window).UnixNano()))
	count := pipe.ZCard(ctx, key)
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now.UnixNano()), Member: now.UnixNano()})
	pipe.Expire(ctx, key, window+time.Minute)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	return count.Val() < int64(limit), nil
}
