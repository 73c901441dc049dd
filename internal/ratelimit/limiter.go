package ratelimit

import (
	"context"
	"time"
)

// Limiter paces outbound provider calls.
type Limiter interface {
	Wait(ctx context.Context) error
	Allow() bool
	Reserve() time.Duration
	Reset()
}

// Strategy selects the pacing algorithm.
type Strategy string

const (
	StrategyTokenBucket Strategy = "token_bucket"
	StrategyFixedDelay  Strategy = "fixed_delay"
)

// New creates a rate limiter from config.
func New(cfg Config) Limiter {
	cfg = applyDefaults(cfg)
	switch cfg.Strategy {
	case StrategyFixedDelay:
		return NewFixedDelay(cfg)
	default:
		return NewTokenBucket(cfg)
	}
}
