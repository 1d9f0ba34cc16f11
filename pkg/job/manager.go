package job

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivertype"
)

// Manager owns the River client and the task registry.
type Manager struct {
	client      *river.Client[pgx.Tx]
	pool        *pgxpool.Pool
	registry    registry
	logger      *slog.Logger
	maxAttempts int

	mu      sync.Mutex
	started bool
}

// NewManager builds a Manager. Call Start to begin working jobs.
func NewManager(pool *pgxpool.Pool, opts ...Option) (*Manager, error) {
	if pool == nil {
		return nil, ErrPoolRequired
	}

	cfg := newConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, &taskWorker{registry: cfg.registry, logger: cfg.logger})

	client, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues:       map[string]river.QueueConfig{river.QueueDefault: {MaxWorkers: cfg.maxWorkers}},
		Workers:      workers,
		Logger:       cfg.logger,
		ErrorHandler: &errorHandler{logger: cfg.logger},
		MaxAttempts:  cfg.maxAttempts,
	})
	if err != nil {
		return nil, fmt.Errorf("job: create client: %w", err)
	}

	return &Manager{
		client:      client,
		pool:        pool,
		registry:    cfg.registry,
		logger:      cfg.logger,
		maxAttempts: cfg.maxAttempts,
	}, nil
}

func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.started {
		return ErrAlreadyStarted
	}
	if err := m.client.Start(ctx); err != nil {
		return fmt.Errorf("job: start client: %w", err)
	}
	m.started = true
	m.logger.InfoContext(ctx, "job manager started", slog.Any("tasks", m.registry.names()))
	return nil
}

func (m *Manager) Stop(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.started {
		return ErrNotStarted
	}
	if err := m.client.Stop(ctx); err != nil {
		return fmt.Errorf("job: stop client: %w", err)
	}
	m.started = false
	m.logger.InfoContext(ctx, "job manager stopped")
	return nil
}

// Shutdown adapts Stop to a shutdown hook. Stopping a manager that never
// started is not an error.
func (m *Manager) Shutdown() func(context.Context) error {
	return func(ctx context.Context) error {
		if err := m.Stop(ctx); err != nil && !errors.Is(err, ErrNotStarted) {
			return err
		}
		return nil
	}
}

// Enqueue inserts a job for a registered task.
func (m *Manager) Enqueue(ctx context.Context, name string, payload any, opts ...EnqueueOption) error {
	if _, ok := m.registry[name]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTask, name)
	}

	args, insert, err := buildArgs(name, payload, opts...)
	if err != nil {
		return err
	}
	if insert.MaxAttempts == 0 {
		insert.MaxAttempts = m.maxAttempts
	}

	res, err := m.client.Insert(ctx, args, insert)
	if err != nil {
		return fmt.Errorf("job: enqueue %s: %w", name, err)
	}
	if res.UniqueSkippedAsDuplicate {
		m.logger.DebugContext(ctx, "duplicate job skipped",
			slog.String("task", name),
			slog.Int64("job_id", res.Job.ID),
		)
	}
	return nil
}

// Healthcheck reports whether the manager is running and the pool reachable.
func Healthcheck(m *Manager) func(context.Context) error {
	return func(ctx context.Context) error {
		m.mu.Lock()
		started := m.started
		m.mu.Unlock()

		if !started {
			return errors.Join(ErrHealthcheckFailed, ErrNotStarted)
		}
		if err := m.pool.Ping(ctx); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}

type taskArgs struct {
	Task      string          `json:"task" river:"unique"`
	UniqueKey string          `json:"unique_key,omitempty" river:"unique"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

func (taskArgs) Kind() string { return "leadapi:task" }

func buildArgs(name string, payload any, opts ...EnqueueOption) (taskArgs, *river.InsertOpts, error) {
	args := taskArgs{Task: name}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return args, nil, fmt.Errorf("job: marshal payload: %w", err)
		}
		args.Payload = raw
	}

	var ec enqueueConfig
	for _, opt := range opts {
		opt(&ec)
	}

	insert := &river.InsertOpts{
		MaxAttempts: ec.maxAttempts,
		ScheduledAt: ec.scheduledAt,
		Tags:        ec.tags,
	}
	if ec.uniqueFor > 0 {
		args.UniqueKey = ec.uniqueKey
		insert.UniqueOpts = river.UniqueOpts{ByArgs: true, ByPeriod: ec.uniqueFor}
	}
	return args, insert, nil
}

type taskWorker struct {
	river.WorkerDefaults[taskArgs]
	registry registry
	logger   *slog.Logger
}

func (w *taskWorker) Work(ctx context.Context, j *river.Job[taskArgs]) error {
	run, ok := w.registry[j.Args.Task]
	if !ok {
		return river.JobCancel(fmt.Errorf("%w: %s", ErrUnknownTask, j.Args.Task))
	}

	err := run(ctx, j.Args.Payload)
	if errors.Is(err, ErrInvalidPayload) {
		return river.JobCancel(err)
	}
	return err
}

// Timeout bounds a single attempt.
func (w *taskWorker) Timeout(*river.Job[taskArgs]) time.Duration {
	return time.Minute
}

type errorHandler struct {
	logger *slog.Logger
}

func (h *errorHandler) HandleError(ctx context.Context, job *rivertype.JobRow, err error) *river.ErrorHandlerResult {
	h.logger.WarnContext(ctx, "job attempt failed",
		slog.Int64("job_id", job.ID),
		slog.Int("attempt", job.Attempt),
		slog.Int("max_attempts", job.MaxAttempts),
		slog.String("error", err.Error()),
	)
	return nil
}

func (h *errorHandler) HandlePanic(ctx context.Context, job *rivertype.JobRow, panicVal any, trace string) *river.ErrorHandlerResult {
	h.logger.ErrorContext(ctx, "job panicked",
		slog.Int64("job_id", job.ID),
		slog.Int("attempt", job.Attempt),
		slog.Any("panic", panicVal),
		slog.String("trace", trace),
	)
	return nil
}
