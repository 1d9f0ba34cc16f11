package web_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thermocore/leadapi/internal/web"
)

func TestHTTPError(t *testing.T) {
	t.Parallel()

	cause := errors.New("smtp down")
	err := web.ErrInternal("could not send",
		web.WithErrorCode("EMAIL_SEND_ERROR"),
		web.WithError(cause),
		web.WithDetail("id", "01J"),
	)

	assert.Equal(t, http.StatusInternalServerError, err.Code)
	assert.Equal(t, "could not send", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, map[string]any{"id": "01J"}, err.Details)

	he, ok := web.AsHTTPError(fmt.Errorf("handler: %w", err))
	require.True(t, ok)
	assert.Equal(t, "EMAIL_SEND_ERROR", he.ErrorCode)

	_, ok = web.AsHTTPError(cause)
	assert.False(t, ok)
}

func TestHTTPErrorConstructors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  *web.HTTPError
		code int
	}{
		{web.ErrBadRequest("x"), http.StatusBadRequest},
		{web.ErrNotFound("x"), http.StatusNotFound},
		{web.ErrMethodNotAllowed("x"), http.StatusMethodNotAllowed},
		{web.ErrRequestTooLarge("x"), http.StatusRequestEntityTooLarge},
		{web.ErrTooManyRequests("x"), http.StatusTooManyRequests},
		{web.ErrInternal("x"), http.StatusInternalServerError},
		{web.ErrServiceUnavailable("x"), http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.code, tt.err.Code)
	}
}
