package main

import (
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/acksites/quoterelay"
	"github.com/acksites/quoterelay/middlewares"
	"github.com/acksites/quoterelay/pkg/health"
	"github.com/acksites/quoterelay/relay"
)

// metricsHandler serves the Prometheus registry.
type metricsHandler struct {
	path     string
	gatherer prometheus.Gatherer
}

func (h metricsHandler) Routes(r quoterelay.Router) {
	serve := promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{})
	r.GET(h.path, func(c quoterelay.Context) error {
		serve.ServeHTTP(c.Response(), c.Request())
		return nil
	})
}

// newApp assembles the HTTP application from already-built collaborators.
func newApp(cfg Config, log *slog.Logger, r *relay.Relay, ready health.CheckFunc, gatherer prometheus.Gatherer) *quoterelay.App {
	mw := []quoterelay.Middleware{
		middlewares.RequestID(),
		middlewares.Recover(),
	}
	if len(cfg.Server.CORSAllowedOrigins) > 0 {
		mw = append(mw, middlewares.CORS(middlewares.WithAllowOrigins(cfg.Server.CORSAllowedOrigins...)))
	}

	handlers := []quoterelay.Handler{relay.NewHandler(r)}
	if cfg.Server.MetricsPath != "" {
		handlers = append(handlers, metricsHandler{path: cfg.Server.MetricsPath, gatherer: gatherer})
	}

	opts := []quoterelay.Option{
		quoterelay.WithCustomLogger(log),
		quoterelay.WithMiddleware(mw...),
		quoterelay.WithErrorHandler(relay.ErrorHandler),
		quoterelay.WithNotFoundHandler(relay.NotFound),
		quoterelay.WithMethodNotAllowedHandler(relay.MethodNotAllowed),
		quoterelay.WithHandlers(handlers...),
		quoterelay.WithHealthChecks(quoterelay.WithReadinessCheck("resend", ready)),
	}
	if cfg.Server.StaticDir != "" {
		opts = append(opts, quoterelay.WithStaticFiles("/*", os.DirFS(cfg.Server.StaticDir), "."))
	}

	return quoterelay.New(opts...)
}
