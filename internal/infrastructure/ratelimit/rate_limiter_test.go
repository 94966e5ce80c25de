package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_BurstThenBlocks(t *testing.T) {
	rl := NewRateLimiter(0.001, 2)

	ok, _ := rl.Allow("10.0.0.1")
	assert.True(t, ok)
	ok, _ = rl.Allow("10.0.0.1")
	assert.True(t, ok)

	ok, wait := rl.Allow("10.0.0.1")
	assert.False(t, ok)
	assert.Positive(t, wait)

	// other keys have their own bucket
	ok, _ = rl.Allow("10.0.0.2")
	assert.True(t, ok)
	assert.Equal(t, 2, rl.TrackedKeys())
}

func TestRateLimiter_ActiveBucketOutlivesTTL(t *testing.T) {
	rl := newRateLimiter(0.001, 1, 200*time.Millisecond)

	ok, _ := rl.Allow("10.0.0.1")
	assert.True(t, ok)

	// keep the key busy for well past one TTL; a fresh bucket would allow again
	for i := 0; i < 10; i++ {
		time.Sleep(50 * time.Millisecond)
		ok, _ = rl.Allow("10.0.0.1")
		assert.False(t, ok, "request %d", i)
	}

	time.Sleep(400 * time.Millisecond)
	ok, _ = rl.Allow("10.0.0.1")
	assert.True(t, ok, "idle bucket is forgotten")
}
