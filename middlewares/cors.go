package middlewares

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/thermocore/leadapi/internal/web"
)

// DefaultCORSMaxAge is how long browsers may cache a preflight answer.
const DefaultCORSMaxAge = 12 * time.Hour

type corsConfig struct {
	allowOriginFunc  func(origin string) bool
	allowOrigins     []string
	allowMethods     []string
	allowHeaders     []string
	exposeHeaders    []string
	maxAge           time.Duration
	allowCredentials bool
}

// CORSOption configures CORS.
type CORSOption func(*corsConfig)

// WithAllowOrigins restricts the allowed origins. An empty list keeps the
// default "*".
func WithAllowOrigins(origins ...string) CORSOption {
	return func(cfg *corsConfig) {
		var cleaned []string
		for _, o := range origins {
			if o = strings.TrimRight(strings.TrimSpace(o), "/"); o != "" {
				cleaned = append(cleaned, o)
			}
		}
		if len(cleaned) > 0 {
			cfg.allowOrigins = cleaned
		}
	}
}

// WithAllowOriginFunc validates origins dynamically and overrides
// WithAllowOrigins.
func WithAllowOriginFunc(fn func(origin string) bool) CORSOption {
	return func(cfg *corsConfig) {
		cfg.allowOriginFunc = fn
	}
}

func WithAllowMethods(methods ...string) CORSOption {
	return func(cfg *corsConfig) {
		cfg.allowMethods = methods
	}
}

func WithAllowHeaders(headers ...string) CORSOption {
	return func(cfg *corsConfig) {
		cfg.allowHeaders = headers
	}
}

func WithExposeHeaders(headers ...string) CORSOption {
	return func(cfg *corsConfig) {
		cfg.exposeHeaders = headers
	}
}

// WithAllowCredentials echoes the request origin instead of "*" and sets
// Access-Control-Allow-Credentials. The consent cookie needs it when the
// site and the API live on different origins.
func WithAllowCredentials() CORSOption {
	return func(cfg *corsConfig) {
		cfg.allowCredentials = true
	}
}

func WithMaxAge(d time.Duration) CORSOption {
	return func(cfg *corsConfig) {
		cfg.maxAge = d
	}
}

// CORS adds Cross-Origin Resource Sharing headers and answers preflight
// requests with 204 before routing.
func CORS(opts ...CORSOption) web.Middleware {
	cfg := &corsConfig{
		allowOrigins: []string{"*"},
		allowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		allowHeaders: []string{"Origin", "Content-Type", "Accept", "Accept-Language", "X-Requested-With"},
		exposeHeaders: []string{
			"X-Request-ID",
			"X-RateLimit-Limit",
			"X-RateLimit-Remaining",
			"X-RateLimit-Reset",
			"Retry-After",
		},
		maxAge: DefaultCORSMaxAge,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	allowMethods := strings.Join(cfg.allowMethods, ", ")
	allowHeaders := strings.Join(cfg.allowHeaders, ", ")
	exposeHeaders := strings.Join(cfg.exposeHeaders, ", ")
	maxAge := strconv.Itoa(int(cfg.maxAge.Seconds()))
	wildcard := slices.Contains(cfg.allowOrigins, "*")

	allowed := func(origin string) bool {
		if cfg.allowOriginFunc != nil {
			return cfg.allowOriginFunc(origin)
		}
		return wildcard || slices.Contains(cfg.allowOrigins, origin)
	}

	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(c web.Context) error {
			origin := c.Header("Origin")
			if origin == "" || !allowed(origin) {
				// Not a CORS request, or one the browser will block.
				return next(c)
			}

			h := c.Response().Header()
			h.Add("Vary", "Origin")
			if cfg.allowCredentials || !wildcard {
				h.Set("Access-Control-Allow-Origin", origin)
			} else {
				h.Set("Access-Control-Allow-Origin", "*")
			}
			if cfg.allowCredentials {
				h.Set("Access-Control-Allow-Credentials", "true")
			}
			if exposeHeaders != "" {
				h.Set("Access-Control-Expose-Headers", exposeHeaders)
			}

			if c.Request().Method != http.MethodOptions || c.Header("Access-Control-Request-Method") == "" {
				return next(c)
			}

			h.Add("Vary", "Access-Control-Request-Method")
			h.Add("Vary", "Access-Control-Request-Headers")
			h.Set("Access-Control-Allow-Methods", allowMethods)
			h.Set("Access-Control-Allow-Headers", allowHeaders)
			if cfg.maxAge > 0 {
				h.Set("Access-Control-Max-Age", maxAge)
			}
			return c.NoContent(http.StatusNoContent)
		}
	}
}
