package middlewares

import (
	"context"
	"errors"
	"time"

	"github.com/thermocore/leadapi/internal/web"
)

// DefaultTimeout is used when Timeout gets a non-positive duration.
const DefaultTimeout = 30 * time.Second

type timeoutContextKey struct{}

// Timeout returns a TimeoutError when the handler runs past d. The handler
// goroutine keeps running; long operations should watch
// GetTimeoutContext(c).Done().
func Timeout(d time.Duration) web.Middleware {
	if d <= 0 {
		d = DefaultTimeout
	}

	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(c web.Context) error {
			ctx, cancel := context.WithTimeout(c.Request().Context(), d)
			defer cancel()

			c.Set(timeoutContextKey{}, ctx)

			done := make(chan error, 1)
			go func() {
				defer func() {
					// A panic here would escape any Recover further out.
					if r := recover(); r != nil {
						done <- &PanicError{Value: r}
					}
				}()
				done <- next(c)
			}()

			select {
			case err := <-done:
				return err
			case <-ctx.Done():
				if errors.Is(ctx.Err(), context.DeadlineExceeded) {
					c.LogWarn("request timeout", "timeout", d.String())
					return &TimeoutError{Duration: d}
				}
				return ctx.Err()
			}
		}
	}
}

// GetTimeoutContext returns the context bound to the request deadline, or
// c itself outside Timeout.
func GetTimeoutContext(c web.Context) context.Context {
	if ctx, ok := c.Get(timeoutContextKey{}).(context.Context); ok {
		return ctx
	}
	return c
}
