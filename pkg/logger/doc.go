// Package logger builds the service's slog.Logger.
//
// Records are written as JSON (or text for local development) and decorated
// with request-scoped attributes pulled from the context by ContextExtractor
// functions, so a request ID set by middleware shows up on every line logged
// with that request's context:
//
//	log := logger.New(logger.Config{Level: "info"}, os.Stdout,
//		middlewares.RequestIDExtractor(),
//	)
//	log.InfoContext(ctx, "contact submitted", logger.Error(err))
//
// When a Sentry DSN is configured, warnings and errors are also forwarded to
// Sentry; errors become issues.
package logger
