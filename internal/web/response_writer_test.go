package web_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thermocore/leadapi/internal/web"
)

func TestResponseWriter(t *testing.T) {
	t.Parallel()

	t.Run("hooks run once before the header is sent", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		w := web.NewResponseWriter(rec)

		calls := 0
		w.OnBeforeWrite(func() {
			calls++
			w.Header().Set("X-Hook", "yes")
		})

		w.WriteHeader(http.StatusCreated)
		w.WriteHeader(http.StatusTeapot)
		_, err := w.Write([]byte("hello"))
		require.NoError(t, err)

		assert.Equal(t, 1, calls)
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "yes", rec.Header().Get("X-Hook"))
		assert.Equal(t, http.StatusCreated, w.Status())
		assert.EqualValues(t, 5, w.Size())
		assert.True(t, w.Written())
	})

	t.Run("write without header defaults to 200", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		w := web.NewResponseWriter(rec)
		assert.False(t, w.Written())

		_, _ = w.Write([]byte("x"))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, http.StatusOK, w.Status())
	})

	t.Run("wrapping twice returns the same writer", func(t *testing.T) {
		t.Parallel()
		w := web.NewResponseWriter(httptest.NewRecorder())
		assert.Same(t, w, web.NewResponseWriter(w))
	})

	t.Run("unwrap exposes the original", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		assert.Same(t, rec, web.NewResponseWriter(rec).Unwrap())
	})
}
