// Package internal holds the HTTP runtime behind the quoterelay package.
//
// Import "github.com/acksites/quoterelay" instead; it re-exports the public API.
//
// # Core Types
//
//   - App: chi-backed router, middleware chain and graceful shutdown
//   - Context: request/response access, JSON helpers and request-scoped logging
//   - Router: route declaration used by Handler implementations
//   - Handler: a type that declares routes
//   - HandlerFunc: a route handler returning an error
//   - Middleware: wraps a HandlerFunc
//   - ErrorHandler: renders errors returned by handlers
//
// Context embeds context.Context, so a handler can pass it directly to
// blocking calls such as the outbound mail request; a client disconnect
// then cancels that call.
//
// # Error Flow
//
// A handler that returns a non-nil error hands it to the ErrorHandler
// unless it has already written a response. Middleware errors (a recovered
// panic, for example) follow the same path.
//
// # Lifecycle
//
// Run listens on the given address and blocks until SIGINT, SIGTERM or
// cancellation of the WithContext base context. The server then stops
// accepting requests, drains in-flight ones within ShutdownTimeout and runs
// the shutdown hooks in order.
package internal
