// Package middlewares provides the HTTP middleware the lead API runs every
// request through.
//
// Recommended order:
//
//	web.WithMiddleware(
//	    middlewares.CORS(),                  // answer preflight before anything else
//	    middlewares.RequestID(),             // every later log line carries request_id
//	    middlewares.Recover(),               // panics become PanicError
//	    middlewares.Timeout(15*time.Second), // slow handlers become TimeoutError
//	    middlewares.I18n(svc),               // request language and translator
//	)
//
// JSONErrorHandler renders the errors those middlewares and the handlers
// return as the JSON envelope clients expect:
//
//	{"success": false, "error": "...", "code": "VALIDATION_ERROR", "errors": {...}}
package middlewares
