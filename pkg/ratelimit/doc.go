// Package ratelimit implements a fixed-window request counter keyed by
// client identifier.
//
// Two stores satisfy the Limiter interface. Memory keeps counters in the
// process behind a mutex, bounded by a background sweep of expired windows
// and an optional LRU cap. Redis keeps counters in a shared Redis instance
// so that several replicas enforce one budget.
//
// A blocked call never increments the counter, so a client that keeps
// retrying while throttled does not extend its own penalty.
//
//	limiter := ratelimit.NewMemory(
//	    ratelimit.WithLimit(5),
//	    ratelimit.WithWindow(time.Hour),
//	)
//	defer limiter.Close()
//
//	d, err := limiter.Allow(ctx, ratelimit.ClientID(r))
//	if err == nil && !d.Allowed {
//	    // 429
//	}
package ratelimit
