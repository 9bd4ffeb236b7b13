package security

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// LoginTrackerConfig holds configuration for login tracking
type LoginTrackerConfig struct {
	MaxAttempts   int           // failed attempts before a block (default: 5)
	AttemptWindow time.Duration // window failed attempts are counted in (default: 15min)
	BlockDuration time.Duration // how long a block lasts (default: 15min)
}

// DefaultLoginTrackerConfig returns sensible defaults
func DefaultLoginTrackerConfig() LoginTrackerConfig {
	return LoginTrackerConfig{
		MaxAttempts:   5,
		AttemptWindow: 15 * time.Minute,
		BlockDuration: 15 * time.Minute,
	}
}

// Redis key patterns
const (
	failLoginPrefix    = "fail:login:"
	blockedLoginPrefix = "blocked:login:"
)

// Lua script for atomic increment with TTL on first set
// KEYS[1] = counter key
// ARGV[1] = TTL in seconds
// Returns: current count after increment
const incrWithTTLScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
return count
`

type memoryCounter struct {
	count        int
	resetAt      time.Time
	blockedUntil time.Time
}

// LoginTracker counts failed logins per identity and blocks the identity
// once MaxAttempts is reached. Counters live in Redis when a client is
// given and in process memory otherwise.
type LoginTracker struct {
	config LoginTrackerConfig
	redis  *goredis.Client
	audit  *AuditLogger

	mu       sync.Mutex
	counters map[string]*memoryCounter
	now      func() time.Time
}

func NewLoginTracker(config LoginTrackerConfig, client *goredis.Client, audit *AuditLogger) *LoginTracker {
	defaults := DefaultLoginTrackerConfig()
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = defaults.MaxAttempts
	}
	if config.AttemptWindow <= 0 {
		config.AttemptWindow = defaults.AttemptWindow
	}
	if config.BlockDuration <= 0 {
		config.BlockDuration = defaults.BlockDuration
	}
	return &LoginTracker{
		config:   config,
		redis:    client,
		audit:    audit,
		counters: map[string]*memoryCounter{},
		now:      time.Now,
	}
}

// IsBlocked reports whether identity is currently locked out.
func (lt *LoginTracker) IsBlocked(ctx context.Context, identity string) (bool, error) {
	if lt.redis != nil {
		exists, err := lt.redis.Exists(ctx, blockedLoginPrefix+identity).Result()
		if err != nil {
			return false, fmt.Errorf("failed to check login block: %w", err)
		}
		if exists > 0 {
			lt.audit.LoginBlocked(identity)
			return true, nil
		}
		return false, nil
	}

	lt.mu.Lock()
	defer lt.mu.Unlock()
	c, ok := lt.counters[identity]
	blocked := ok && lt.now().Before(c.blockedUntil)
	if blocked {
		lt.audit.LoginBlocked(identity)
	}
	return blocked, nil
}

// RecordFailure counts a failed attempt and reports whether it caused a block.
func (lt *LoginTracker) RecordFailure(ctx context.Context, identity string) (bool, error) {
	var count int
	if lt.redis != nil {
		n, err := lt.atomicIncrement(ctx, failLoginPrefix+identity, int(lt.config.AttemptWindow.Seconds()))
		if err != nil {
			return false, fmt.Errorf("failed to increment login counter: %w", err)
		}
		count = n
	} else {
		count = lt.incrementInMemory(identity)
	}

	lt.audit.LoginFailed(identity, count)
	if count < lt.config.MaxAttempts {
		return false, nil
	}

	if lt.redis != nil {
		if err := lt.redis.Set(ctx, blockedLoginPrefix+identity, "1", lt.config.BlockDuration).Err(); err != nil {
			return true, fmt.Errorf("failed to set login block: %w", err)
		}
		_ = lt.redis.Del(ctx, failLoginPrefix+identity).Err()
	} else {
		lt.mu.Lock()
		c := lt.counters[identity]
		c.count = 0
		c.blockedUntil = lt.now().Add(lt.config.BlockDuration)
		lt.mu.Unlock()
	}

	lt.audit.BlockCreated(identity, int(lt.config.BlockDuration.Minutes()))
	return true, nil
}

// Clear forgets failed attempts after a successful login.
func (lt *LoginTracker) Clear(ctx context.Context, identity string) error {
	lt.audit.LoginSucceeded(identity)
	if lt.redis != nil {
		if err := lt.redis.Del(ctx, failLoginPrefix+identity).Err(); err != nil {
			return fmt.Errorf("failed to clear login attempts: %w", err)
		}
		return nil
	}

	lt.mu.Lock()
	delete(lt.counters, identity)
	lt.mu.Unlock()
	return nil
}

func (lt *LoginTracker) atomicIncrement(ctx context.Context, key string, ttlSeconds int) (int, error) {
	result, err := lt.redis.Eval(ctx, incrWithTTLScript, []string{key}, ttlSeconds).Result()
	if err != nil {
		return 0, err
	}
	count, ok := result.(int64)
	if !ok {
		return 0, errors.New("unexpected result type from Lua script")
	}
	return int(count), nil
}

func (lt *LoginTracker) incrementInMemory(identity string) int {
	lt.mu.Lock()
	defer lt.mu.Unlock()

	now := lt.now()
	c, ok := lt.counters[identity]
	if !ok {
		c = &memoryCounter{resetAt: now.Add(lt.config.AttemptWindow)}
		lt.counters[identity] = c
	}
	if now.After(c.resetAt) {
		c.count = 0
		c.resetAt = now.Add(lt.config.AttemptWindow)
	}
	c.count++
	return c.count
}
