// Package web is the HTTP core of the service: a chi router behind a small
// handler abstraction.
//
// Handlers have the signature func(Context) error. A returned error is
// passed to the App's ErrorHandler unless the handler already wrote a
// response. Middleware wraps HandlerFunc values and is written against the
// same Context, so request-scoped values set by one middleware (request ID,
// translator) are visible to everything after it.
//
//	app := web.New(
//		web.WithLogger(log),
//		web.WithErrorHandler(middlewares.JSONErrorHandler),
//		web.WithMiddleware(middlewares.RequestID(), middlewares.Recover()),
//		web.WithHandlers(contactHandler, consentHandler),
//		web.WithHealth(web.WithReadinessCheck("db", db.Healthcheck(pool))),
//	)
//	err := web.Run(app, web.Address(":8080"), web.ShutdownHook(limiter.Shutdown()))
package web
