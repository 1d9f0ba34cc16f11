package web

import (
	"log/slog"

	"github.com/thermocore/leadapi/pkg/cookie"
	"github.com/thermocore/leadapi/pkg/health"
)

// Option configures an App.
type Option func(*App)

func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithMiddleware appends global middleware. The first one runs outermost.
func WithMiddleware(mw ...Middleware) Option {
	return func(a *App) {
		a.middlewares = append(a.middlewares, mw...)
	}
}

func WithHandlers(h ...Handler) Option {
	return func(a *App) {
		a.handlers = append(a.handlers, h...)
	}
}

func WithErrorHandler(h ErrorHandler) Option {
	return func(a *App) {
		a.errorHandler = h
	}
}

func WithNotFoundHandler(h HandlerFunc) Option {
	return func(a *App) {
		a.notFoundHandler = h
	}
}

func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return func(a *App) {
		a.methodNotAllowedHandler = h
	}
}

func WithCookieManager(m *cookie.Manager) Option {
	return func(a *App) {
		a.cookieManager = m
	}
}

// WithHealth mounts /health/live and /health/ready.
func WithHealth(opts ...HealthOption) Option {
	return func(a *App) {
		cfg := &healthConfig{
			required:      health.Checks{},
			optional:      health.Checks{},
			livenessPath:  "/health/live",
			readinessPath: "/health/ready",
		}
		for _, opt := range opts {
			opt(cfg)
		}
		a.health = cfg
	}
}
