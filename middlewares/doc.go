// Package middlewares provides the HTTP middleware used by the relay server.
//
// # Request ID
//
// RequestID assigns an ID to each request, reusing a well-formed upstream
// X-Request-ID or X-Correlation-ID header and otherwise generating a UUID.
// The ID is echoed in the X-Request-ID response header. Pair it with
// RequestIDExtractor so every log record made with the request context
// carries request_id:
//
//	log := logger.New(middlewares.RequestIDExtractor())
//	app := quoterelay.New(
//	    quoterelay.WithCustomLogger(log),
//	    quoterelay.WithMiddleware(
//	        middlewares.RequestID(),
//	        middlewares.Recover(),
//	    ),
//	)
//
// Register RequestID before Recover so the panic log has the ID.
//
// # Recover
//
// Recover converts a panic into a *PanicError returned to the app error
// handler, which renders it as a regular 500 response. Stack traces go to
// the log only, never to the client.
//
// # CORS
//
// CORS lets a landing page on another origin post to the API. It answers
// preflight requests itself and leaves every other request to the route:
//
//	middlewares.CORS(middlewares.WithAllowOrigins("https://lima-cleaning.example"))
package middlewares
