package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrRateLimited is returned by Decision.Err when the attempt was rejected.
	ErrRateLimited = errors.New("rate limited")
	// ErrBackendUnavailable wraps failures of the counter store.
	ErrBackendUnavailable = errors.New("rate limit backend unavailable")
	// ErrInvalidConfig reports a non-positive quota or window.
	ErrInvalidConfig = errors.New("invalid rate limit config")
)

// Config sizes a fixed window.
type Config struct {
	Quota  int
	Window time.Duration
}

func (c Config) Validate() error {
	if c.Quota <= 0 {
		return fmt.Errorf("%w: quota must be positive, got %d", ErrInvalidConfig, c.Quota)
	}
	if c.Window <= 0 {
		return fmt.Errorf("%w: window must be positive, got %s", ErrInvalidConfig, c.Window)
	}
	return nil
}

// Decision is the outcome of one attempt.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	// ResetAt is when the current window closes.
	ResetAt time.Time
}

// Err returns ErrRateLimited for a rejected attempt and nil otherwise.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return ErrRateLimited
}

// RetryAfter is the time until the window closes, rounded up to a whole
// second and never less than one.
func (d Decision) RetryAfter(now time.Time) time.Duration {
	wait := d.ResetAt.Sub(now)
	secs := (wait + time.Second - 1) / time.Second
	return max(secs, 1) * time.Second
}

// Limiter records one attempt for key and decides whether it is admitted.
type Limiter interface {
	Admit(ctx context.Context, key string) (Decision, error)
}

func decide(cfg Config, count int64, resetAt time.Time) Decision {
	return Decision{
		Allowed:   count <= int64(cfg.Quota),
		Limit:     cfg.Quota,
		Remaining: int(max(int64(cfg.Quota)-count, 0)),
		ResetAt:   resetAt,
	}
}
