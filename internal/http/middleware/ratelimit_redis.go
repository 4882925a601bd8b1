package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"loyalty_app/internal/logger"

	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"
)

var redisClient *redis.Client

// UseRedis installs the shared client for the rate limiters. A nil client
// makes them fall back to the in-process limiter.
func UseRedis(client *redis.Client) {
	redisClient = client
}

// RateLimit limits requests per client IP within scope. Limiters with
// different scopes never share a counter. It uses Redis when configured and
// the in-process limiter otherwise.
func RateLimit(scope string, maxRequests int, window time.Duration) gin.HandlerFunc {
	local := NewLocalLimiter(window)
	return func(c *gin.Context) {
		limit(c, rateKey(scope, window, c.ClientIP()), c.FullPath(), maxRequests, window, local)
	}
}

func rateKey(scope string, window time.Duration, ident string) string {
	return "rl:" + scope + ":" + strconv.FormatInt(int64(window.Seconds()), 10) + ":" + ident
}

// ActivityRateLimit limits character activity calls per account. It requires
// JWT to have run first.
func ActivityRateLimit(maxCalls int, window time.Duration) gin.HandlerFunc {
	local := NewLocalLimiter(window)
	return func(c *gin.Context) {
		accountID := c.GetInt64(AccountIDKey)
		if accountID == 0 {
			abortUnauthorized(c, "unauthorized")
			return
		}
		key := "activity_rl:" + strconv.FormatInt(accountID, 10) + ":" + strconv.FormatInt(int64(window.Seconds()), 10)
		limit(c, key, "activity:"+c.FullPath(), maxCalls, window, local)
	}
}

// limit implements a fixed-window counter using Redis INCR/EXPIRE. Redis
// errors fail open.
func limit(c *gin.Context, key, endpoint string, maxRequests int, window time.Duration, local *LocalLimiter) {
	var (
		count int64
		err   error
	)
	if redisClient != nil {
		count, err = incrWindow(c.Request.Context(), key, window)
		if err != nil {
			logger.Warn("rate limiter redis error", "error", err, "key", key)
			c.Header("X-RateLimit-Error", "redis-error")
			c.Next()
			return
		}
	} else {
		count = local.Hit(key, time.Now())
	}

	c.Header("X-RateLimit-Limit", strconv.Itoa(maxRequests))
	c.Header("X-RateLimit-Remaining", strconv.FormatInt(max(0, int64(maxRequests)-count), 10))

	if count > int64(maxRequests) {
		RLBlocked.WithLabelValues(endpoint).Inc()
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"success":     false,
			"code":        "RATE_LIMITED",
			"message":     "rate limit exceeded",
			"retry_after": int(window.Seconds()),
		})
		return
	}

	RLRequests.WithLabelValues(endpoint).Inc()
	c.Next()
}

// incrWindow counts one hit and makes sure the key expires. A key left
// without a TTL by an earlier failed EXPIRE gets one on the next hit.
func incrWindow(ctx context.Context, key string, window time.Duration) (int64, error) {
	var (
		incr *redis.IntCmd
		ttl  *redis.DurationCmd
	)
	_, err := redisClient.TxPipelined(ctx, func(p redis.Pipeliner) error {
		incr = p.Incr(ctx, key)
		ttl = p.TTL(ctx, key)
		return nil
	})
	if err != nil {
		return 0, err
	}
	if ttl.Val() < 0 {
		if err := redisClient.Expire(ctx, key, window).Err(); err != nil {
			return 0, err
		}
	}
	return incr.Val(), nil
}
