package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// allowScript checks the counter before incrementing it so that blocked
// calls leave the window untouched.
//
// KEYS[1] = counter key
// ARGV[1] = limit
// ARGV[2] = window in milliseconds
// Returns: {count, ttl_ms, allowed}
var allowScript = redis.NewScript(`
local limit = tonumber(ARGV[1])
local current = tonumber(redis.call('GET', KEYS[1]) or '0')
if current >= limit then
    local ttl = redis.call('PTTL', KEYS[1])
    if ttl < 0 then
        redis.call('PEXPIRE', KEYS[1], ARGV[2])
        ttl = tonumber(ARGV[2])
    end
    return {current, ttl, 0}
end
current = redis.call('INCR', KEYS[1])
local ttl = redis.call('PTTL', KEYS[1])
if ttl < 0 then
    redis.call('PEXPIRE', KEYS[1], ARGV[2])
    ttl = tonumber(ARGV[2])
end
return {current, ttl, 1}
`)

// Redis is a fixed-window limiter whose counters live in Redis.
// Counter keys expire with their window, so no sweep is needed.
type Redis struct {
	client redis.Scripter
	opts   *options
}

// NewRedis creates a Redis-backed limiter.
// The client is usually obtained from pkg/redis.Open.
func NewRedis(client redis.Scripter, opts ...Option) *Redis {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &Redis{client: client, opts: o}
}

// Allow records a request for key and reports whether it may proceed.
func (r *Redis) Allow(ctx context.Context, key string) (Decision, error) {
	limit := r.opts.limit

	res, err := allowScript.Run(ctx, r.client,
		[]string{r.key(key)},
		limit, r.opts.window.Milliseconds(),
	).Int64Slice()
	if err != nil {
		return Decision{}, errors.Join(ErrStore, err)
	}
	if len(res) != 3 {
		return Decision{}, fmt.Errorf("%w: got %d values", ErrBadResponse, len(res))
	}

	count, ttl, allowed := int(res[0]), time.Duration(res[1])*time.Millisecond, res[2] == 1
	d := Decision{
		Allowed: allowed,
		Limit:   limit,
		ResetAt: r.opts.now().Add(ttl),
	}
	if allowed {
		d.Remaining = max(limit-count, 0)
	}
	return d, nil
}

func (r *Redis) key(k string) string {
	return r.opts.prefix + ":" + k
}

var _ Limiter = (*Redis)(nil)
