package consent

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/thermocore/leadapi/internal/web"
	"github.com/thermocore/leadapi/middlewares"
	"github.com/thermocore/leadapi/pkg/cookie"
	"github.com/thermocore/leadapi/pkg/logger"
)

// CodeInvalidAction is the error code of an unknown PUT action.
const CodeInvalidAction = "INVALID_CONSENT_ACTION"

// Cookie defaults.
const (
	CookieName = "consent"
	CookieTTL  = 180 * 24 * time.Hour

	maxBodySize = 4 << 10
)

// Handler serves GET, PUT and DELETE /consent.
type Handler struct {
	now     func() time.Time
	newID   func() string
	version string
}

// Option configures a Handler.
type Option func(*Handler)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) {
		if now != nil {
			h.now = now
		}
	}
}

// WithIDGenerator overrides the uuid generator.
func WithIDGenerator(fn func() string) Option {
	return func(h *Handler) {
		if fn != nil {
			h.newID = fn
		}
	}
}

// NewHandler creates a Handler for the given policy version.
func NewHandler(version string, opts ...Option) *Handler {
	h := &Handler{
		version: version,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes implements web.Handler.
func (h *Handler) Routes(r web.Router) {
	r.GET("/consent", h.get)
	r.PUT("/consent", h.update)
	r.DELETE("/consent", h.withdraw)
}

type updateRequest struct {
	Action    Action `json:"action"`
	Analytics bool   `json:"analytics"`
	Marketing bool   `json:"marketing"`
}

func (h *Handler) get(c web.Context) error {
	s, err := h.load(c)
	if err != nil {
		return err
	}
	return respond(c, s.Current(h.version))
}

func (h *Handler) update(c web.Context) error {
	var req updateRequest
	if err := c.BindJSON(&req, maxBodySize); err != nil {
		if errors.Is(err, web.ErrBodyTooLarge) {
			return err
		}
		return web.ErrBadRequest(message(c, "errors.invalid_request", "Invalid request. Send a JSON object."),
			web.WithErrorCode(middlewares.CodeInvalidRequest),
			web.WithError(err))
	}

	s, err := h.load(c)
	if err != nil {
		return err
	}

	next, err := s.Decide(req.Action, req.Analytics, req.Marketing, h.version, h.now())
	if err != nil {
		return web.ErrBadRequest(message(c, "errors.invalid_consent_action", "Invalid consent action."),
			web.WithErrorCode(CodeInvalidAction),
			web.WithError(err))
	}
	if next.ID == "" {
		next.ID = h.newID()
	}

	if err := h.save(c, next); err != nil {
		return err
	}
	c.LogInfo("consent updated",
		slog.String("consent_id", next.ID),
		slog.String("status", string(next.Status)))
	return respond(c, next)
}

func (h *Handler) withdraw(c web.Context) error {
	s, err := h.load(c)
	if err != nil {
		return err
	}

	next := s.Withdraw(h.version, h.now())
	if next.ID == "" {
		next.ID = h.newID()
	}

	if err := h.save(c, next); err != nil {
		return err
	}
	c.LogInfo("consent withdrawn", slog.String("consent_id", next.ID))
	return respond(c, next)
}

// load reads the cookie. A missing or tampered cookie is a visitor who has
// not decided yet.
func (h *Handler) load(c web.Context) (State, error) {
	var s State
	err := c.CookieJSON(CookieName, &s)
	switch {
	case err == nil:
		return s, nil
	case errors.Is(err, cookie.ErrNotFound):
		return Pending(h.version), nil
	case errors.Is(err, cookie.ErrBadSig), errors.Is(err, cookie.ErrDecode):
		c.LogWarn("discarding invalid consent cookie", logger.Error(err))
		return Pending(h.version), nil
	default:
		return State{}, web.ErrInternal(middlewares.Message(c, "errors.internal"), web.WithError(err))
	}
}

func (h *Handler) save(c web.Context, s State) error {
	if err := c.SetCookieJSON(CookieName, s, CookieTTL); err != nil {
		return web.ErrInternal(middlewares.Message(c, "errors.internal"), web.WithError(err))
	}
	return nil
}

func respond(c web.Context, s State) error {
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"consent": s,
	})
}

func message(c web.Context, key, fallback string) string {
	if msg := c.T(key); msg != key {
		return msg
	}
	return fallback
}
