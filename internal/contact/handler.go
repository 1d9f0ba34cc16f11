package contact

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/thermocore/leadapi/internal/web"
	"github.com/thermocore/leadapi/middlewares"
	"github.com/thermocore/leadapi/pkg/i18n"
	"github.com/thermocore/leadapi/pkg/id"
	"github.com/thermocore/leadapi/pkg/logger"
	"github.com/thermocore/leadapi/pkg/ratelimit"
	"github.com/thermocore/leadapi/pkg/storage"
)

// Response codes specific to the contact endpoints.
const (
	CodeEmailSend   = "EMAIL_SEND_ERROR"
	CodeInvalidFile = "INVALID_FILE"
	CodeUpload      = "UPLOAD_ERROR"
)

// DefaultMaxBodySize bounds the JSON body of POST /contact.
const DefaultMaxBodySize = 64 << 10

// Handler serves the contact endpoints.
type Handler struct {
	limiter    ratelimit.Limiter
	dispatcher Dispatcher
	storage    storage.Storage
	newID      func() string
	now        func() time.Time
	maxBody    int64
}

// Option configures a Handler.
type Option func(*Handler)

// WithStorage enables POST /contact/attachments.
func WithStorage(s storage.Storage) Option {
	return func(h *Handler) {
		h.storage = s
	}
}

func WithIDGenerator(fn func() string) Option {
	return func(h *Handler) {
		if fn != nil {
			h.newID = fn
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(h *Handler) {
		if now != nil {
			h.now = now
		}
	}
}

func WithMaxBodySize(n int64) Option {
	return func(h *Handler) {
		if n > 0 {
			h.maxBody = n
		}
	}
}

// NewHandler wires the contact pipeline. limiter and dispatcher are
// required.
func NewHandler(limiter ratelimit.Limiter, dispatcher Dispatcher, opts ...Option) *Handler {
	if limiter == nil || dispatcher == nil {
		panic("contact: limiter and dispatcher are required")
	}
	h := &Handler{
		limiter:    limiter,
		dispatcher: dispatcher,
		newID:      id.New,
		now:        time.Now,
		maxBody:    DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes implements web.Handler.
func (h *Handler) Routes(r web.Router) {
	r.POST("/contact", h.submit)
	r.OPTIONS("/contact", preflight)
	r.POST("/contact/attachments", h.upload)
	r.OPTIONS("/contact/attachments", preflight)
}

// preflight answers OPTIONS when the CORS middleware did not, e.g. for a
// same-origin probe without Access-Control-Request-Method.
func preflight(c web.Context) error {
	c.SetHeader("Allow", "POST, OPTIONS")
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) submit(c web.Context) error {
	client := ratelimit.ClientID(c.Request())
	if err := h.checkRate(c, client); err != nil {
		return err
	}

	var raw map[string]any
	if err := c.BindJSON(&raw, h.maxBody); err != nil {
		if errors.Is(err, web.ErrBodyTooLarge) {
			return err
		}
		return web.ErrBadRequest(translate(c, "errors.invalid_request"),
			web.WithErrorCode(middlewares.CodeInvalidRequest),
			web.WithError(err))
	}
	if raw == nil {
		return web.ErrBadRequest(translate(c, "errors.invalid_request"),
			web.WithErrorCode(middlewares.CodeInvalidRequest))
	}

	submissionID := h.newID()

	if Honeypot(raw) {
		c.LogInfo("honeypot triggered, submission dropped",
			slog.String("client", client),
			slog.String("submission_id", submissionID))
		return h.accepted(c, submissionID)
	}

	s := Sanitize(raw)
	if res := Validate(s); !res.Valid() {
		return middlewares.ValidationHTTPError(c, res.Errors)
	}

	// The visitor already pressed send; a dropped connection must not cancel
	// delivery. Each send carries its own timeout.
	out := h.dispatcher.Dispatch(context.WithoutCancel(c), s, Meta{
		ID:         submissionID,
		Language:   c.Language(),
		ReceivedAt: h.now(),
	})

	if !out.NotificationSent {
		return web.ErrInternal(translate(c, "errors.email_send"),
			web.WithErrorCode(CodeEmailSend),
			web.WithError(out.NotificationErr))
	}

	c.LogInfo("contact submission accepted",
		slog.String("submission_id", submissionID),
		slog.String("client", client),
		slog.Bool("confirmation_sent", out.ConfirmationSent),
		slog.Bool("confirmation_queued", out.ConfirmationQueued),
		slog.Int("attachments", len(s.Files)))

	return h.accepted(c, submissionID)
}

func (h *Handler) accepted(c web.Context, submissionID string) error {
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"message": translate(c, "contact.success"),
		"id":      submissionID,
	})
}

// checkRate consults the limiter and sets the quota headers. Limiter
// failures admit the request.
func (h *Handler) checkRate(c web.Context, key string) error {
	d, err := h.limiter.Allow(c, key)
	if err != nil {
		c.LogWarn("rate limiter unavailable, request admitted",
			slog.String("client", key), logger.Error(err))
		return nil
	}

	c.SetHeader("X-RateLimit-Limit", strconv.Itoa(d.Limit))
	c.SetHeader("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
	c.SetHeader("X-RateLimit-Reset", strconv.FormatInt(d.ResetAt.Unix(), 10))
	if d.Allowed {
		return nil
	}

	wait := d.RetryAfter(h.now())
	c.SetHeader("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
	c.LogWarn("rate limit exceeded", slog.String("client", key))

	minutes := max(1, int(math.Ceil(wait.Minutes())))
	return web.ErrTooManyRequests(translate(c, "errors.rate_limited", i18n.M{"minutes": minutes}),
		web.WithErrorCode(middlewares.CodeRateLimited))
}

var fallbackMessages = map[string]string{
	"errors.invalid_request": "Invalid request. Send a JSON object.",
	"errors.rate_limited":    "Too many requests. Please try again in {{minutes}} minutes.",
	"errors.email_send":      "We could not send your message. Please try again or reach us directly by phone or WhatsApp.",
	"errors.invalid_file":    "Invalid file.",
	"errors.upload_failed":   "We could not upload the file. Please try again.",
	"contact.success":        "Message sent! We will get back to you soon.",
}

func translate(c web.Context, key string, m ...i18n.M) string {
	if msg := c.T(key, m...); msg != key {
		return msg
	}
	msg, ok := fallbackMessages[key]
	if !ok {
		return key
	}
	for _, p := range m {
		msg = i18n.Replace(msg, p)
	}
	return msg
}
