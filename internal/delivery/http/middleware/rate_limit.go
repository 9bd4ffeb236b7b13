package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/auth"
	"go-jobboard-backend/pkg/logger"
	"go-jobboard-backend/pkg/security"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	// Requests per window
	Limit int
	// Time window duration
	Window time.Duration
	// Custom key extractor (default: IP-based). An empty key skips counting.
	KeyFunc func(*gin.Context) string
	// Key prefix for Redis (default: "rl:ip:")
	KeyPrefix string
	// Whether to fail closed (reject) when Redis is unavailable
	FailClosed bool
}

// rateLimitEntry tracks request count for a key (in-memory fallback)
type rateLimitEntry struct {
	count   int
	resetAt time.Time
	mu      sync.Mutex
}

// Lua script for atomic increment with TTL on first set
// KEYS[1] = counter key
// ARGV[1] = TTL in seconds
// Returns: [current_count, ttl_remaining]
const rateLimitLuaScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`

// RateLimiter counts requests in Redis when a client is configured and in
// process memory otherwise (or when Redis errors and FailClosed is false).
type RateLimiter struct {
	redis       *goredis.Client
	audit       *security.AuditLogger
	store       sync.Map
	cleanupOnce sync.Once
}

// NewRateLimiter creates a limiter. client and audit may be nil.
func NewRateLimiter(client *goredis.Client, audit *security.AuditLogger) *RateLimiter {
	return &RateLimiter{redis: client, audit: audit}
}

// GlobalRateLimitConfig returns the default per-IP limit for every route
func GlobalRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Limit:      limit,
		Window:     window,
		KeyPrefix:  "rl:ip:",
		FailClosed: false, // Fail open by default for availability
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	}
}

// LoginRateLimitConfig returns strict config for the token endpoints
func LoginRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Limit:      limit,
		Window:     window,
		KeyPrefix:  "rl:login:",
		FailClosed: true,
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	}
}

// Identifier resolves the principal behind an Authorization header.
type Identifier interface {
	Identify(authHeader string) (auth.Principal, error)
}

// UploadRateLimitConfig limits photo uploads per account. Only requests whose
// token belongs to the :username owner are counted; the rest are rejected by
// the handler and stay under the global per-IP limit.
func UploadRateLimitConfig(limit int, window time.Duration, identifier Identifier) RateLimitConfig {
	return RateLimitConfig{
		Limit:      limit,
		Window:     window,
		KeyPrefix:  "rl:upload:",
		FailClosed: false,
		KeyFunc: func(c *gin.Context) string {
			principal, err := identifier.Identify(c.GetHeader("Authorization"))
			if err != nil || principal != auth.User(c.Param("username")) {
				return ""
			}
			return principal.Name
		},
	}
}

// Middleware creates a rate limiting middleware with the given config
func (rl *RateLimiter) Middleware(config RateLimitConfig) gin.HandlerFunc {
	rl.cleanupOnce.Do(rl.startCleanup)

	return func(c *gin.Context) {
		key := config.KeyFunc(c)
		if key == "" {
			c.Next()
			return
		}
		fullKey := config.KeyPrefix + key
		now := time.Now()

		var count int
		var resetAt time.Time

		if rl.redis != nil {
			var err error
			count, resetAt, err = checkRateLimitRedis(c.Request.Context(), rl.redis, fullKey, config)
			if err != nil {
				logger.Log.Error("rate limit redis error", "key_prefix", config.KeyPrefix, "error", err)
				if config.FailClosed {
					response.Error(c, apperror.New(http.StatusServiceUnavailable, "Service Unavailable", "Service temporarily unavailable. Please try again.", err))
					return
				}
				count, resetAt = rl.checkInMemory(fullKey, config, now)
			}
		} else {
			count, resetAt = rl.checkInMemory(fullKey, config, now)
		}

		if count > config.Limit {
			retryAfter := int(time.Until(resetAt).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}

			c.Header("X-RateLimit-Limit", strconv.Itoa(config.Limit))
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("X-RateLimit-Reset", resetAt.Format(time.RFC3339))
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			logger.Log.Warn("rate limit triggered",
				"ip", c.ClientIP(),
				"path", c.FullPath(),
				"request_id", c.GetString(RequestIDKey),
			)
			if rl.audit != nil {
				rl.audit.RateLimitTriggered(c.ClientIP(), c.FullPath(), c.GetString(RequestIDKey))
			}

			response.Error(c, apperror.TooManyRequests("Rate limit exceeded. Please try again later."))
			return
		}

		remaining := config.Limit - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", resetAt.Format(time.RFC3339))

		c.Next()
	}
}

// checkRateLimitRedis checks rate limit using Redis with atomic Lua script
func checkRateLimitRedis(ctx context.Context, client *goredis.Client, key string, config RateLimitConfig) (int, time.Time, error) {
	ttlSeconds := int(config.Window.Seconds())

	result, err := client.Eval(ctx, rateLimitLuaScript, []string{key}, ttlSeconds).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("redis rate limit eval failed: %w", err)
	}

	arr, ok := result.([]interface{})
	if !ok || len(arr) < 2 {
		return 0, time.Time{}, fmt.Errorf("unexpected redis result format")
	}

	count, _ := arr[0].(int64)
	ttl, _ := arr[1].(int64)

	return int(count), time.Now().Add(time.Duration(ttl) * time.Second), nil
}

func (rl *RateLimiter) checkInMemory(key string, config RateLimitConfig, now time.Time) (int, time.Time) {
	entryI, _ := rl.store.LoadOrStore(key, &rateLimitEntry{
		resetAt: now.Add(config.Window),
	})
	entry := entryI.(*rateLimitEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if now.After(entry.resetAt) {
		entry.count = 0
		entry.resetAt = now.Add(config.Window)
	}
	entry.count++

	return entry.count, entry.resetAt
}

// startCleanup drops expired in-memory entries every five minutes
func (rl *RateLimiter) startCleanup() {
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			now := time.Now()
			rl.store.Range(func(key, value interface{}) bool {
				entry := value.(*rateLimitEntry)
				entry.mu.Lock()
				if now.After(entry.resetAt) {
					rl.store.Delete(key)
				}
				entry.mu.Unlock()
				return true
			})
		}
	}()
}
