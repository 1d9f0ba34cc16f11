// Package redis opens go-redis clients from a URL with startup retries
// and exposes helpers for readiness probes and graceful shutdown.
//
// The service only needs Redis when several replicas must share one rate
// limit budget, so every caller treats an empty URL as "Redis disabled":
//
//	if cfg.Redis.URL != "" {
//	    client, err := redis.Connect(ctx, cfg.Redis)
//	    ...
//	    limiter = ratelimit.NewRedis(client)
//	}
package redis
