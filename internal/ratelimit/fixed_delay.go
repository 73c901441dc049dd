package ratelimit

import (
	"context"
	"sync"
	"time"
)

// FixedDelay spaces calls a constant interval apart. Simpler than a bucket
// and the right shape for vendor APIs that throttle on request spacing rather
// than sustained rate.
type FixedDelay struct {
	delay       time.Duration
	lastRequest time.Time
	mu          sync.Mutex
}

// NewFixedDelay creates a limiter whose first call proceeds immediately.
func NewFixedDelay(cfg Config) *FixedDelay {
	cfg = applyDefaults(cfg)
	return &FixedDelay{delay: cfg.FixedDelay}
}

// Wait blocks until the configured spacing from the previous call has
// elapsed, or the context is canceled.
func (fd *FixedDelay) Wait(ctx context.Context) error {
	fd.mu.Lock()
	wait, now := fd.reserve(time.Now())
	fd.lastRequest = now.Add(wait)
	fd.mu.Unlock()

	if wait <= 0 {
		return nil
	}

	timer := time.NewTimer(wait)
	select {
	case <-ctx.Done():
		timer.Stop()
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Allow reports whether a request can proceed without waiting.
func (fd *FixedDelay) Allow() bool {
	fd.mu.Lock()
	defer fd.mu.Unlock()

	wait, now := fd.reserve(time.Now())
	if wait > 0 {
		return false
	}

	fd.lastRequest = now
	return true
}

// Reserve returns the remaining wait time.
func (fd *FixedDelay) Reserve() time.Duration {
	fd.mu.Lock()
	defer fd.mu.Unlock()

	wait, _ := fd.reserve(time.Now())
	return wait
}

// Reset clears the last request time.
func (fd *FixedDelay) Reset() {
	fd.mu.Lock()
	defer fd.mu.Unlock()
	fd.lastRequest = time.Time{}
}

func (fd *FixedDelay) reserve(now time.Time) (time.Duration, time.Time) {
	if fd.lastRequest.IsZero() {
		return 0, now
	}

	elapsed := now.Sub(fd.lastRequest)
	if elapsed >= fd.delay {
		return 0, now
	}

	return fd.delay - elapsed, now
}
