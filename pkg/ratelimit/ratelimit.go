package ratelimit

import (
	"context"
	"time"
)

// Defaults for contact-form traffic.
const (
	DefaultLimit  = 5
	DefaultWindow = time.Hour
)

// Decision is the outcome of a single Allow call.
type Decision struct {
	// ResetAt is when the current window ends.
	ResetAt time.Time

	// Limit is the number of requests allowed per window.
	Limit int

	// Remaining is the number of requests still allowed in this window.
	// Zero when Allowed is false.
	Remaining int

	Allowed bool
}

// RetryAfter returns the time left until the window resets, never negative.
func (d Decision) RetryAfter(now time.Time) time.Duration {
	if wait := d.ResetAt.Sub(now); wait > 0 {
		return wait
	}
	return 0
}

// Limiter decides whether a request identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}
