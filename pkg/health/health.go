package health

import (
	"context"
	"io"
	"log/slog"
	"maps"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

const defaultTimeout = 5 * time.Second

const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// CheckFunc reports whether a dependency is usable.
type CheckFunc func(ctx context.Context) error

// Checks maps check names to functions.
type Checks map[string]CheckFunc

// Response is the readiness payload.
type Response struct {
	Checks map[string]Check `json:"checks,omitempty"`
	Status string           `json:"status"`
}

// Check is the outcome of one check.
type Check struct {
	Status   string `json:"status"`
	Error    string `json:"error,omitempty"`
	Optional bool   `json:"optional,omitempty"`
}

type config struct {
	logger   *slog.Logger
	optional Checks
	timeout  time.Duration
}

// Option configures readiness behavior.
type Option func(*config)

// WithTimeout bounds the whole check run.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the logger used for failed checks.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithOptional registers checks whose failure degrades but does not fail readiness.
func WithOptional(checks Checks) Option {
	return func(c *config) {
		if c.optional == nil {
			c.optional = Checks{}
		}
		maps.Copy(c.optional, checks)
	}
}

func newConfig(opts ...Option) *config {
	cfg := &config{
		timeout: defaultTimeout,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Run executes required and optional checks in parallel.
func Run(ctx context.Context, required Checks, opts ...Option) *Response {
	return run(ctx, required, newConfig(opts...))
}

func run(ctx context.Context, required Checks, cfg *config) *Response {
	if len(required) == 0 && len(cfg.optional) == 0 {
		return &Response{Status: StatusHealthy}
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.timeout)
	defer cancel()

	var (
		mu      sync.Mutex
		g       errgroup.Group
		results = make(map[string]Check, len(required)+len(cfg.optional))
	)

	launch := func(checks Checks, optional bool) {
		for name, check := range checks {
			g.Go(func() error {
				res := Check{Status: StatusHealthy, Optional: optional}
				if err := check(ctx); err != nil {
					res.Status = StatusUnhealthy
					res.Error = err.Error()
					cfg.logger.WarnContext(ctx, "health check failed",
						slog.String("check", name),
						slog.Bool("optional", optional),
						slog.String("error", err.Error()),
					)
				}
				mu.Lock()
				results[name] = res
				mu.Unlock()
				return nil
			})
		}
	}
	launch(required, false)
	launch(cfg.optional, true)
	_ = g.Wait()

	status := StatusHealthy
	for _, res := range results {
		if res.Status != StatusUnhealthy {
			continue
		}
		if !res.Optional {
			status = StatusUnhealthy
			break
		}
		status = StatusDegraded
	}

	return &Response{Status: status, Checks: results}
}
