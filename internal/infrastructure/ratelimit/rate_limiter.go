package ratelimit

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

const (
	maxTrackedKeys = 10000
	idleTTL        = time.Hour
)

// RateLimiter hands out one token bucket per key (client address, user id).
// Buckets idle for longer than an hour are forgotten.
type RateLimiter struct {
	buckets *expirable.LRU[string, *rate.Limiter]
	limit   rate.Limit
	burst   int
}

// NewRateLimiter allows perSecond sustained events per key with bursts of burst.
func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	return newRateLimiter(perSecond, burst, idleTTL)
}

func newRateLimiter(perSecond float64, burst int, ttl time.Duration) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		buckets: expirable.NewLRU[string, *rate.Limiter](maxTrackedKeys, nil, ttl),
		limit:   rate.Limit(perSecond),
		burst:   burst,
	}
}

// Allow consumes a token for key. When none is left it reports how long until
// the next one.
func (rl *RateLimiter) Allow(key string) (bool, time.Duration) {
	limiter := rl.bucket(key)
	now := time.Now()
	r := limiter.ReserveN(now, 1)
	if !r.OK() {
		return false, time.Second
	}
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return false, delay
	}
	return true, 0
}

func (rl *RateLimiter) TrackedKeys() int {
	return rl.buckets.Len()
}

func (rl *RateLimiter) bucket(key string) *rate.Limiter {
	limiter, ok := rl.buckets.Get(key)
	if !ok {
		// a concurrent first request may race here; the loser's bucket wins
		// later lookups, which at worst grants one extra burst
		limiter = rate.NewLimiter(rl.limit, rl.burst)
	}
	// Get leaves the expiry alone; re-adding pushes it back so only idle
	// buckets age out
	rl.buckets.Add(key, limiter)
	return limiter
}
