package job

import (
	"io"
	"log/slog"
	"time"
)

const (
	defaultMaxWorkers  = 10
	defaultMaxAttempts = 5
)

type config struct {
	registry    registry
	logger      *slog.Logger
	maxWorkers  int
	maxAttempts int
}

func newConfig() *config {
	return &config{
		registry:    registry{},
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		maxWorkers:  defaultMaxWorkers,
		maxAttempts: defaultMaxAttempts,
	}
}

// Option configures a Manager.
type Option func(*config)

// WithTask registers a task under its Name.
func WithTask[P any](task Task[P]) Option {
	return func(c *config) {
		c.registry[task.Name()] = wrap(task)
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMaxWorkers bounds concurrent jobs on the default queue.
func WithMaxWorkers(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxWorkers = n
		}
	}
}

// WithMaxAttempts sets the default attempt budget for enqueued jobs.
func WithMaxAttempts(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

type enqueueConfig struct {
	scheduledAt time.Time
	uniqueKey   string
	uniqueFor   time.Duration
	maxAttempts int
	tags        []string
}

// EnqueueOption configures a single insert.
type EnqueueOption func(*enqueueConfig)

// ScheduledIn delays the first attempt.
func ScheduledIn(d time.Duration) EnqueueOption {
	return func(c *enqueueConfig) {
		if d > 0 {
			c.scheduledAt = time.Now().Add(d)
		}
	}
}

func MaxAttempts(n int) EnqueueOption {
	return func(c *enqueueConfig) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

// UniqueKey drops duplicate inserts of the same task and key within period.
func UniqueKey(key string, period time.Duration) EnqueueOption {
	return func(c *enqueueConfig) {
		c.uniqueKey = key
		c.uniqueFor = period
	}
}

func Tags(tags ...string) EnqueueOption {
	return func(c *enqueueConfig) {
		c.tags = append(c.tags, tags...)
	}
}
