package logger

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig configures error reporting.
type SentryConfig struct {
	DSN         string  `env:"SENTRY_DSN"`
	Environment string  `env:"SENTRY_ENVIRONMENT" envDefault:"production"`
	Release     string  `env:"SENTRY_RELEASE"`
	SampleRate  float64 `env:"SENTRY_SAMPLE_RATE" envDefault:"1.0"`
}

// NewWithSentry creates a logger that also forwards warnings and errors to
// Sentry. Without a DSN, or if Sentry fails to initialize, it behaves like
// New. The returned function flushes buffered events and should run on
// shutdown.
func NewWithSentry(cfg Config, scfg SentryConfig, w io.Writer, extractors ...ContextExtractor) (*slog.Logger, func(context.Context) error) {
	base := baseHandler(cfg, w)
	noop := func(context.Context) error { return nil }

	if scfg.DSN == "" {
		return slog.New(NewLogHandlerDecorator(base, extractors...)), noop
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         scfg.DSN,
		Environment: scfg.Environment,
		Release:     scfg.Release,
		SampleRate:  scfg.SampleRate,
		EnableLogs:  true,
	}); err != nil {
		slog.New(base).Error("failed to initialize sentry", Error(err))
		return slog.New(NewLogHandlerDecorator(base, extractors...)), noop
	}

	sh := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   []slog.Level{slog.LevelWarn, slog.LevelError},
	}.NewSentryHandler(context.Background())

	flush := func(ctx context.Context) error {
		timeout := 2 * time.Second
		if dl, ok := ctx.Deadline(); ok {
			timeout = time.Until(dl)
		}
		sentry.Flush(timeout)
		return nil
	}

	return slog.New(NewLogHandlerDecorator(fanout{base, sh}, extractors...)), flush
}
