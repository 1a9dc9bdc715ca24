package database

import (
	"context"
	"time"
)

// RetryPolicy bounds connection attempts.
type RetryPolicy struct {
	// MaxAttempts is the total number of attempts, including the first one.
	MaxAttempts int

	// Delay returns how long to wait after the given failed attempt (1-based).
	Delay func(attempt int) time.Duration
}

// FixedDelay waits the same duration after every failed attempt.
func FixedDelay(d time.Duration) func(int) time.Duration {
	return func(int) time.Duration { return d }
}

// Clock sleeps between attempts. Tests substitute a clock that records instead of waiting.
type Clock interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// realClock sleeps on the wall clock and gives up early when ctx ends.
type realClock struct{}

func (realClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
