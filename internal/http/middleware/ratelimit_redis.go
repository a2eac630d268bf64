package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"tasktracker/internal/logger"

	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"
)

// NewRedisClient connects to Redis. It returns nil without error when addr
// is empty so callers can run without Redis.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	if addr == "" {
		return nil, nil
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}

// RateLimiter is a fixed-window limiter on Redis INCR/EXPIRE.
// key format: rl:<scope>:<window_seconds>:<client_ip>
// Without Redis, or when a Redis call fails, it counts in process instead.
type RateLimiter struct {
	rdb    *redis.Client
	scope  string
	max    int
	window time.Duration
	local  *memoryWindow
	now    func() time.Time
}

// NewRateLimiter creates a limiter; rdb may be nil
func NewRateLimiter(rdb *redis.Client, scope string, maxRequests int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		rdb:    rdb,
		scope:  scope,
		max:    maxRequests,
		window: window,
		local:  newMemoryWindow(window),
		now:    time.Now,
	}
}

func (l *RateLimiter) key(ident string) string {
	return "rl:" + l.scope + ":" + strconv.FormatInt(int64(l.window.Seconds()), 10) + ":" + ident
}

func (l *RateLimiter) count(c *gin.Context) int64 {
	ident := c.ClientIP()
	if l.rdb == nil {
		return l.local.incr(ident, l.now())
	}

	ctx := c.Request.Context()
	key := l.key(ident)
	val, err := l.rdb.Incr(ctx, key).Result()
	if err != nil {
		c.Header("X-RateLimit-Error", "redis-error")
		logger.WithContext(ctx).Warn("rate limiter redis error", "error", err)
		return l.local.incr(ident, l.now())
	}
	if val == 1 {
		// first increment, set expiry
		l.rdb.Expire(ctx, key, l.window)
	}
	return val
}

// Handler returns the gin middleware
func (l *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		val := l.count(c)
		endpoint := l.scope + ":" + c.FullPath()

		c.Header("X-RateLimit-Limit", strconv.Itoa(l.max))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(max(0, int64(l.max)-val), 10))

		if val > int64(l.max) {
			RLBlocked.WithLabelValues(endpoint).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate limit exceeded",
				"retry_after": int(l.window.Seconds()),
			})
			return
		}

		RLRequests.WithLabelValues(endpoint).Inc()
		c.Next()
	}
}
