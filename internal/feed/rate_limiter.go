package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter caps how often a user may submit comments on the live feed
type RateLimiter struct {
	rdb *redis.Client
	ctx context.Context
}

// NewRateLimiter creates a RateLimiter instance
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		rdb: GetRedisClient(),
		ctx: GetContext(),
	}
}

// RateLimitConfig defines comment rate limit rules
type RateLimitConfig struct {
	MaxComments   int           // per window
	CommentWindow time.Duration // sliding window for submissions
}

// DefaultRateLimitConfig returns the default comment rate limit
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		MaxComments:   3,
		CommentWindow: 30 * time.Second,
	}
}

// CheckCommentRateLimit reports whether the user may submit another comment on
// the bill within the current window
func (rl *RateLimiter) CheckCommentRateLimit(billID, userID string, config RateLimitConfig) (bool, error) {
	if rl == nil || rl.rdb == nil {
		return false, fmt.Errorf("Redis client not available")
	}

	key := fmt.Sprintf("feed:%s:ratelimit:%s", billID, userID)
	count, err := rl.rdb.Incr(rl.ctx, key).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := rl.rdb.Expire(rl.ctx, key, config.CommentWindow).Err(); err != nil {
			return false, err
		}
	}

	return count <= int64(config.MaxComments), nil
}
