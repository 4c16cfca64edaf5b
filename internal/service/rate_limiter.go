package service

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// AuthRateLimit limits auth attempts per client IP. With a redis client the
// counter is shared across instances; without one it falls back to an
// in-process sliding window.
type AuthRateLimit struct {
	rdb      *redis.Client
	requests map[string][]time.Time
	mu       sync.Mutex
	window   time.Duration
	maxReqs  int
}

// NewAuthRateLimit creates a rate limiter. rdb may be nil.
func NewAuthRateLimit(rdb *redis.Client, window time.Duration, maxReqs int) *AuthRateLimit {
	return &AuthRateLimit{
		rdb:      rdb,
		requests: make(map[string][]time.Time),
		window:   window,
		maxReqs:  maxReqs,
	}
}

// Allow reports whether the IP is within its limit and records the attempt
func (r *AuthRateLimit) Allow(ctx context.Context, ip string) bool {
	if r.rdb != nil {
		return r.allowRedis(ctx, ip)
	}
	return r.allowLocal(ip)
}

func (r *AuthRateLimit) allowRedis(ctx context.Context, ip string) bool {
	key := "auth_rl:" + ip

	count, err := r.rdb.Incr(ctx, key).Result()
	if err != nil {
		// Redis trouble must not lock users out
		zap.L().Warn("rate limiter redis error, allowing request", zap.Error(err))
		return true
	}
	if count == 1 {
		r.rdb.Expire(ctx, key, r.window)
	}

	return count <= int64(r.maxReqs)
}

func (r *AuthRateLimit) allowLocal(ip string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()

	// Clean old requests
	if reqs, exists := r.requests[ip]; exists {
		var valid []time.Time
		for _, t := range reqs {
			if now.Sub(t) < r.window {
				valid = append(valid, t)
			}
		}
		r.requests[ip] = valid
	}

	if len(r.requests[ip]) >= r.maxReqs {
		return false
	}

	r.requests[ip] = append(r.requests[ip], now)
	return true
}
