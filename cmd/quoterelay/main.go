// Command quoterelay serves the quote request endpoint and forwards each
// submission to Resend.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/acksites/quoterelay"
	"github.com/acksites/quoterelay/middlewares"
	"github.com/acksites/quoterelay/pkg/logger"
	"github.com/acksites/quoterelay/pkg/mailer/resend"
	"github.com/acksites/quoterelay/relay"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "quoterelay:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := logger.NewWithSentry(cfg.Log, cfg.Sentry, os.Stdout, middlewares.RequestIDExtractor())

	sender, err := resend.New(cfg.Resend)
	if err != nil {
		return fmt.Errorf("resend: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	r, err := relay.New(sender, cfg.Relay,
		relay.WithLogger(log.With(slog.String("component", "relay"))),
		relay.WithMetrics(relay.NewMetrics(reg)),
	)
	if err != nil {
		return err
	}

	if cfg.Relay.APIKey == "" {
		log.Warn("RESEND_API_KEY is not set; contact requests will fail with a configuration error")
	}
	if cfg.Relay.Recipient == "" {
		log.Warn("CONTACT_EMAIL is not set; the caller-supplied recipient will be used")
	}

	app := newApp(cfg, log, r, resend.Healthcheck(sender), reg)

	if err := app.Run(cfg.Server.Address,
		quoterelay.ShutdownTimeout(cfg.Server.ShutdownTimeout),
		quoterelay.ShutdownHook(logger.SentryShutdownHook()),
	); err != nil {
		log.Error("server stopped", slog.Any("error", err))
		return err
	}
	return nil
}
