// Package logger builds slog loggers with context attribute extraction and
// optional Sentry fan-out.
//
// A [ContextExtractor] pulls a request-scoped value out of the context on
// every log call. [LogHandlerDecorator] applies extractors on top of any
// slog.Handler:
//
//	log := logger.New(middlewares.RequestIDExtractor())
//	log.InfoContext(ctx, "email sent", slog.String("id", id))
//	// {"level":"INFO","msg":"email sent","id":"...","request_id":"..."}
//
// [NewWithSentry] writes locally and, when SENTRY_DSN is set, forwards
// records to Sentry. Error records create issues; records at or above
// SentryConfig.MinLevel are stored as Sentry logs. Without a DSN the logger
// degrades to local output only, so the same code path runs in development.
//
// Register [SentryShutdownHook] with the server so buffered events are sent
// before the process exits.
package logger
