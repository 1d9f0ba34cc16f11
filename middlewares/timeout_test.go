package middlewares_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thermocore/leadapi/internal/web"
	"github.com/thermocore/leadapi/middlewares"
)

func TestTimeout(t *testing.T) {
	t.Parallel()

	t.Run("fast handler completes", func(t *testing.T) {
		t.Parallel()
		app := newApp(ok, middlewares.Timeout(time.Second))

		rec := serve(app, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("slow handler gets 503 REQUEST_TIMEOUT", func(t *testing.T) {
		t.Parallel()
		release := make(chan struct{})
		defer close(release)

		app := newApp(func(c web.Context) error {
			select {
			case <-middlewares.GetTimeoutContext(c).Done():
			case <-release:
			}
			return nil
		}, middlewares.Timeout(20*time.Millisecond))

		rec := serve(app, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusServiceUnavailable, rec.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "REQUEST_TIMEOUT", body["code"])
	})

	t.Run("panic inside the handler goroutine is recovered", func(t *testing.T) {
		t.Parallel()
		app := newApp(func(web.Context) error {
			panic("late panic")
		}, middlewares.Timeout(time.Second))

		rec := serve(app, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "INTERNAL_ERROR")
	})

	t.Run("timeout error helpers", func(t *testing.T) {
		t.Parallel()
		err := &middlewares.TimeoutError{Duration: time.Second}
		te, ok := middlewares.AsTimeoutError(err)
		require.True(t, ok)
		assert.Equal(t, "request timeout after 1s", te.Error())

		_, ok = middlewares.AsTimeoutError(&middlewares.PanicError{Value: 1})
		assert.False(t, ok)
	})
}
