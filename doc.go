// Package quoterelay is the HTTP application layer of the quote request relay.
//
// It wraps a chi router with a small handler model: a Handler declares
// routes, a HandlerFunc receives a Context and returns an error, and an
// ErrorHandler turns returned errors into responses. Global middleware,
// health probes, static files and graceful shutdown are configured through
// options on New and Run.
//
//	app := quoterelay.New(
//	    quoterelay.WithCustomLogger(log),
//	    quoterelay.WithMiddleware(middlewares.RequestID(), middlewares.Recover()),
//	    quoterelay.WithErrorHandler(relay.ErrorHandler),
//	    quoterelay.WithHandlers(relay.NewHandler(r)),
//	    quoterelay.WithHealthChecks(
//	        quoterelay.WithReadinessCheck("resend", resend.Healthcheck(sender)),
//	    ),
//	)
//	if err := app.Run(":8080"); err != nil {
//	    log.Error("server failed", slog.Any("error", err))
//	}
//
// The relay endpoint itself lives in package relay; this package only hosts it.
package quoterelay
