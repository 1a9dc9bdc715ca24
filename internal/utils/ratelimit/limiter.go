// Package ratelimit provides per-client token bucket limiting for the
// credential endpoints (login, registration and password reset).
package ratelimit

import (
	"sync"
	"time"
)

// Limiter is a token bucket: tokens are added at a fixed rate up to
// capacity and every allowed request consumes one.
type Limiter struct {
	tokens   float64
	lastTime time.Time
	rate     float64
	capacity float64
	now      func() time.Time
	mu       sync.Mutex
}

// Rate controls how many requests per second are allowed
type Rate struct {
	// RequestsPerSecond defines how many tokens are added per second
	RequestsPerSecond float64

	// Burst defines the maximum size of the token bucket
	Burst int
}

// NewLimiter creates a new rate limiter with the specified rate and burst capacity.
//
// Parameters:
//   - rate: The number of tokens per second to add to the bucket
//   - burst: The maximum capacity of the bucket
//
// Returns:
//   - A configured rate limiter, starting full
func NewLimiter(rate float64, burst int) *Limiter {
	return newLimiterWithClock(rate, burst, time.Now)
}

func newLimiterWithClock(rate float64, burst int, now func() time.Time) *Limiter {
	return &Limiter{
		tokens:   float64(burst),
		lastTime: now(),
		rate:     rate,
		capacity: float64(burst),
		now:      now,
	}
}

// Allow reports whether one more request fits in the bucket, consuming a token if so.
func (l *Limiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.tokens += now.Sub(l.lastTime).Seconds() * l.rate
	l.lastTime = now

	if l.tokens > l.capacity {
		l.tokens = l.capacity
	}

	if l.tokens < 1 {
		return false
	}

	l.tokens--
	return true
}

// LastUsed returns when the limiter was last consulted.
func (l *Limiter) LastUsed() time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastTime
}

// ResetTokens refills the bucket.
func (l *Limiter) ResetTokens() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tokens = l.capacity
	l.lastTime = l.now()
}
