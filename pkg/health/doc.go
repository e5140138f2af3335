// Package health provides HTTP handlers for liveness and readiness probes.
//
// Liveness always answers 200 while the process runs. Readiness executes a
// set of named [Checks] in parallel under a shared timeout and answers 503
// when any of them fails.
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//	    "resend": resend.Healthcheck(sender),
//	}))
//
// Plain text is returned by default. Send Accept: application/json or
// ?format=json to get a [Response] body:
//
//	{"status":"unhealthy","checks":{"resend":{"status":"unhealthy","error":"health: check failed"}}}
//
// Check errors are logged and replaced with a generic reason in the body
// unless [WithErrorDetails] is set.
package health
