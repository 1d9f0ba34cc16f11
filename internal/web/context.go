package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/thermocore/leadapi/pkg/cookie"
	"github.com/thermocore/leadapi/pkg/i18n"
)

// ErrBodyTooLarge is returned by BindJSON when the body exceeds the limit.
var ErrBodyTooLarge = errors.New("web: request body too large")

// ErrNoCookieManager is returned by cookie helpers when the App has no
// cookie manager.
var ErrNoCookieManager = errors.New("web: cookie manager not configured")

type (
	translatorKey struct{}
	languageKey   struct{}
)

// Context is the per-request API handlers and middleware work with.
type Context interface {
	context.Context

	Request() *http.Request
	Response() http.ResponseWriter
	ResponseWriter() *ResponseWriter
	Param(name string) string
	Header(name string) string
	SetHeader(name, value string)

	// BindJSON decodes a JSON body of at most limit bytes into v.
	BindJSON(v any, limit int64) error
	JSON(code int, v any) error
	NoContent(code int) error
	Written() bool

	Logger() *slog.Logger
	LogInfo(msg string, attrs ...any)
	LogWarn(msg string, attrs ...any)
	LogError(msg string, attrs ...any)

	// Set stores a request-scoped value visible to later handlers.
	Set(key, value any)
	Get(key any) any

	CookieJSON(name string, dest any) error
	SetCookieJSON(name string, v any, ttl time.Duration) error
	DeleteCookie(name string)

	// T translates key in the request language. Without a translator the
	// key is returned.
	T(key string, placeholders ...i18n.M) string
	Language() string
}

type requestContext struct {
	request *http.Request
	writer  *ResponseWriter
	logger  *slog.Logger
	cookies *cookie.Manager
}

func newContext(w http.ResponseWriter, r *http.Request, app *App) *requestContext {
	return &requestContext{
		request: r,
		writer:  NewResponseWriter(w),
		logger:  app.logger,
		cookies: app.cookieManager,
	}
}

func (c *requestContext) Deadline() (time.Time, bool) { return c.request.Context().Deadline() }
func (c *requestContext) Done() <-chan struct{}       { return c.request.Context().Done() }
func (c *requestContext) Err() error                  { return c.request.Context().Err() }
func (c *requestContext) Value(key any) any           { return c.request.Context().Value(key) }

func (c *requestContext) Request() *http.Request          { return c.request }
func (c *requestContext) Response() http.ResponseWriter   { return c.writer }
func (c *requestContext) ResponseWriter() *ResponseWriter { return c.writer }

func (c *requestContext) Param(name string) string {
	return chi.URLParam(c.request, name)
}

func (c *requestContext) Header(name string) string {
	return c.request.Header.Get(name)
}

func (c *requestContext) SetHeader(name, value string) {
	c.writer.Header().Set(name, value)
}

func (c *requestContext) BindJSON(v any, limit int64) error {
	body := http.MaxBytesReader(c.writer, c.request.Body, limit)
	defer body.Close()

	dec := json.NewDecoder(body)
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return ErrBodyTooLarge
		}
		return fmt.Errorf("web: decode body: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("web: decode body: unexpected data after JSON value")
	}
	return nil
}

func (c *requestContext) JSON(code int, v any) error {
	c.writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	c.writer.WriteHeader(code)
	return json.NewEncoder(c.writer).Encode(v)
}

func (c *requestContext) NoContent(code int) error {
	c.writer.WriteHeader(code)
	return nil
}

func (c *requestContext) Written() bool {
	return c.writer.Written()
}

func (c *requestContext) Logger() *slog.Logger { return c.logger }

func (c *requestContext) LogInfo(msg string, attrs ...any) {
	c.logger.InfoContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogWarn(msg string, attrs ...any) {
	c.logger.WarnContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogError(msg string, attrs ...any) {
	c.logger.ErrorContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) Set(key, value any) {
	c.request = c.request.WithContext(context.WithValue(c.request.Context(), key, value))
}

func (c *requestContext) Get(key any) any {
	return c.request.Context().Value(key)
}

func (c *requestContext) CookieJSON(name string, dest any) error {
	if c.cookies == nil {
		return ErrNoCookieManager
	}
	return c.cookies.GetJSON(c.request, name, dest)
}

func (c *requestContext) SetCookieJSON(name string, v any, ttl time.Duration) error {
	if c.cookies == nil {
		return ErrNoCookieManager
	}
	return c.cookies.SetJSON(c.writer, name, v, ttl)
}

func (c *requestContext) DeleteCookie(name string) {
	if c.cookies != nil {
		c.cookies.Delete(c.writer, name)
	}
}

func (c *requestContext) T(key string, placeholders ...i18n.M) string {
	if tr := TranslatorFrom(c); tr != nil {
		return tr.T(key, placeholders...)
	}
	return key
}

func (c *requestContext) Language() string {
	if lang, ok := c.Get(languageKey{}).(string); ok {
		return lang
	}
	return ""
}

// SetTranslator stores the request translator and language on c.
func SetTranslator(c Context, tr *i18n.Translator) {
	c.Set(translatorKey{}, tr)
	c.Set(languageKey{}, tr.Language())
}

// TranslatorFrom returns the translator stored by SetTranslator.
func TranslatorFrom(ctx context.Context) *i18n.Translator {
	tr, _ := ctx.Value(translatorKey{}).(*i18n.Translator)
	return tr
}
