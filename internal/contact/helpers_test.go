package contact_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/thermocore/leadapi/internal/contact"
	"github.com/thermocore/leadapi/internal/locales"
	"github.com/thermocore/leadapi/internal/web"
	"github.com/thermocore/leadapi/middlewares"
	"github.com/thermocore/leadapi/pkg/ratelimit"
)

type fakeClock struct {
	now time.Time
	mu  sync.Mutex
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 2, 14, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Dispatch(ctx context.Context, s contact.Submission, meta contact.Meta) contact.Outcome {
	args := m.Called(ctx, s, meta)
	return args.Get(0).(contact.Outcome)
}

func sent() contact.Outcome {
	return contact.Outcome{NotificationSent: true, ConfirmationSent: true}
}

type testServer struct {
	app        *web.App
	dispatcher *MockDispatcher
	limiter    *ratelimit.Memory
	clock      *fakeClock
}

func newServer(t *testing.T, opts ...contact.Option) *testServer {
	t.Helper()

	svc, err := locales.Load("pt-BR")
	require.NoError(t, err)

	clock := newFakeClock()
	limiter := ratelimit.NewMemory(ratelimit.WithClock(clock.Now), ratelimit.WithSweepInterval(0))
	t.Cleanup(func() { _ = limiter.Close() })

	d := &MockDispatcher{}
	h := contact.NewHandler(limiter, d, append([]contact.Option{
		contact.WithClock(clock.Now),
	}, opts...)...)

	app := web.New(
		web.WithMiddleware(
			middlewares.CORS(),
			middlewares.RequestID(),
			middlewares.Recover(),
			middlewares.I18n(svc, middlewares.WithI18nNamespace(locales.Namespace)),
		),
		web.WithErrorHandler(middlewares.JSONErrorHandler()),
		web.WithNotFoundHandler(middlewares.NotFound),
		web.WithMethodNotAllowedHandler(middlewares.MethodNotAllowed),
		web.WithHandlers(h),
	)

	return &testServer{app: app, dispatcher: d, limiter: limiter, clock: clock}
}

func (s *testServer) post(body string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "203.0.113.7:51000"
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	s.app.ServeHTTP(rec, req)
	return rec
}

type response struct {
	Errors  map[string][]string `json:"errors"`
	Message string              `json:"message"`
	Error   string              `json:"error"`
	Code    string              `json:"code"`
	ID      string              `json:"id"`
	Success bool                `json:"success"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) response {
	t.Helper()
	var r response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &r), rec.Body.String())
	return r
}

const validBody = `{"name":"Ana","email":"ana@x.com","message":"Oi"}`
