package ratelimit

import "time"

// Option configures a limiter.
type Option func(*options)

type options struct {
	now           func() time.Time
	prefix        string
	window        time.Duration
	sweepInterval time.Duration
	limit         int
	maxEntries    int
}

func defaultOptions() *options {
	return &options{
		limit:         DefaultLimit,
		window:        DefaultWindow,
		sweepInterval: 5 * time.Minute,
		maxEntries:    100_000,
		prefix:        "ratelimit",
		now:           time.Now,
	}
}

// WithLimit sets the number of requests allowed per window.
// Default: 5.
func WithLimit(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.limit = n
		}
	}
}

// WithWindow sets the window length.
// Default: 1 hour.
func WithWindow(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.window = d
		}
	}
}

// WithSweepInterval sets how often the memory store drops expired windows.
// Zero disables the background sweep.
// Default: 5 minutes.
func WithSweepInterval(d time.Duration) Option {
	return func(o *options) {
		o.sweepInterval = d
	}
}

// WithMaxEntries caps the number of tracked clients in the memory store.
// When full, the least recently seen client is forgotten.
// Zero means unlimited.
// Default: 100000.
func WithMaxEntries(n int) Option {
	return func(o *options) {
		o.maxEntries = n
	}
}

// WithPrefix sets the Redis key prefix. Keys are stored as "{prefix}:{key}".
// Default: "ratelimit".
func WithPrefix(prefix string) Option {
	return func(o *options) {
		if prefix != "" {
			o.prefix = prefix
		}
	}
}

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}
