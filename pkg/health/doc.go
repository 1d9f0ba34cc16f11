// Package health serves liveness and readiness probes.
//
// Readiness runs every registered check in parallel under a shared timeout.
// Checks registered as optional report failures without failing the probe:
// the overall status becomes "degraded" and the response is still 200.
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(
//		health.Checks{"postgres": db.Healthcheck(pool)},
//		health.WithOptional(health.Checks{"redis": redis.Healthcheck(client)}),
//	))
//
// Responses are plain text unless the client asks for JSON through the Accept
// header or ?format=json.
package health
