package middlewares_test

import (
	"net/http"
	"net/http/httptest"

	"github.com/thermocore/leadapi/internal/web"
	"github.com/thermocore/leadapi/middlewares"
)

type routes func(r web.Router)

func (f routes) Routes(r web.Router) { f(r) }

// newApp serves h on every method of "/" behind mw, rendering errors with
// the JSON error handler.
func newApp(h web.HandlerFunc, mw ...web.Middleware) *web.App {
	return web.New(
		web.WithMiddleware(mw...),
		web.WithErrorHandler(middlewares.JSONErrorHandler()),
		web.WithNotFoundHandler(middlewares.NotFound),
		web.WithMethodNotAllowedHandler(middlewares.MethodNotAllowed),
		web.WithHandlers(routes(func(r web.Router) {
			r.GET("/", h)
			r.POST("/", h)
		})),
	)
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func ok(c web.Context) error {
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}
