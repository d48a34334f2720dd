package http

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterWindow(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	r := newRateLimiter(2)
	r.now = func() time.Time { return now }

	assert.True(t, r.allow())
	assert.True(t, r.allow())
	assert.False(t, r.allow())

	now = now.Add(time.Minute)
	assert.True(t, r.allow(), "new window resets the counter")
}

func TestRateLimiterDisabled(t *testing.T) {
	r := newRateLimiter(0)
	for range 1000 {
		assert.True(t, r.allow())
	}
	var nilLimiter *rateLimiter
	assert.True(t, nilLimiter.allow())
}
