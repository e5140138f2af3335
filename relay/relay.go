package relay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/acksites/quoterelay/pkg/logger"
	"github.com/acksites/quoterelay/pkg/mailer"
	"github.com/acksites/quoterelay/pkg/sanitizer"
	"github.com/acksites/quoterelay/pkg/validator"
)

// Relay validates quote requests and forwards each one to the mail provider
// exactly once. It holds only immutable configuration and concurrency-safe
// collaborators, so one Relay serves all requests.
type Relay struct {
	sender  mailer.Sender
	cfg     Config
	logger  *slog.Logger
	metrics *Metrics
}

// Option configures a Relay.
type Option func(*Relay)

// WithLogger sets the diagnostics logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Relay) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithMetrics records request outcomes and provider latency.
func WithMetrics(m *Metrics) Option {
	return func(r *Relay) {
		r.metrics = m
	}
}

// New creates a Relay sending through sender.
func New(sender mailer.Sender, cfg Config, opts ...Option) (*Relay, error) {
	if sender == nil {
		return nil, ErrNoSender
	}

	r := &Relay{
		sender: sender,
		cfg:    cfg.withDefaults(),
		logger: logger.NewNope(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Path returns the route the endpoint should be mounted on.
func (r *Relay) Path() string {
	return r.cfg.Path
}

// Handle runs one request through the gates in order: method, decode,
// validation, credential, dispatch. Every failure after the method gate
// produces exactly one log record. Nothing is retried.
func (r *Relay) Handle(ctx context.Context, method string, body io.Reader) Result {
	if method != http.MethodPost {
		r.metrics.request(OutcomeMethodNotAllowed)
		return Result{Status: http.StatusMethodNotAllowed, Body: ErrorBody{Error: msgMethodNotAllowed}}
	}

	req, err := r.decode(body)
	if err != nil {
		r.logger.WarnContext(ctx, "invalid request body", slog.Any("error", err))
		r.metrics.request(OutcomeInvalidBody)
		return Result{Status: http.StatusBadRequest, Body: ErrorBody{Error: msgMissingFields}}
	}

	if r.cfg.SanitizeHTML {
		req.HTML = sanitizer.SanitizeEmailHTML(req.HTML)
	}

	if err := validator.ValidateStruct(req); err != nil {
		r.logger.WarnContext(ctx, "missing required fields",
			slog.Any("fields", validator.ExtractValidationErrors(err).Fields()),
		)
		r.metrics.request(OutcomeMissingFields)
		return Result{Status: http.StatusBadRequest, Body: ErrorBody{Error: msgMissingFields}}
	}

	if r.cfg.APIKey == "" {
		return r.notConfigured(ctx, errors.New("RESEND_API_KEY is not set"))
	}

	start := time.Now()
	id, err := r.sender.Send(ctx, r.compose(req))
	elapsed := time.Since(start)
	if err != nil {
		return r.sendFailed(ctx, err, elapsed)
	}

	r.metrics.providerCall(OutcomeSent, elapsed)
	r.metrics.request(OutcomeSent)
	r.logger.InfoContext(ctx, "email sent", slog.String("id", id))

	return Result{
		Status: http.StatusOK,
		Body:   SuccessBody{Success: true, Message: msgSent, ID: id},
	}
}

// decode reads at most MaxBodyBytes and parses it into a Request. A body that
// does not parse is answered like one missing its required fields.
func (r *Relay) decode(body io.Reader) (*Request, error) {
	if body == nil {
		return nil, errors.New("empty body")
	}

	data, err := io.ReadAll(io.LimitReader(body, r.cfg.MaxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(data)) > r.cfg.MaxBodyBytes {
		return nil, ErrBodyTooLarge
	}

	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("decode body: %w", err)
	}
	return &req, nil
}

// compose builds the outbound message. The configured recipient wins over the
// caller's "to"; reply-to is carried only when the caller supplied one.
func (r *Relay) compose(req *Request) *mailer.Email {
	to := r.cfg.Recipient
	if to == "" {
		to = req.To
	}

	return &mailer.Email{
		From:    r.cfg.Sender,
		To:      []string{to},
		Subject: req.Subject,
		HTML:    req.HTML,
		ReplyTo: req.ReplyTo,
	}
}

func (r *Relay) notConfigured(ctx context.Context, err error) Result {
	r.logger.ErrorContext(ctx, "server configuration error", slog.Any("error", err))
	r.metrics.request(OutcomeNotConfigured)
	return Result{Status: http.StatusInternalServerError, Body: ErrorBody{Error: msgConfiguration}}
}

func (r *Relay) sendFailed(ctx context.Context, err error, elapsed time.Duration) Result {
	if errors.Is(err, mailer.ErrNotConfigured) {
		return r.notConfigured(ctx, err)
	}

	if pe, ok := mailer.AsProviderError(err); ok {
		r.metrics.providerCall(OutcomeProviderError, elapsed)
		r.metrics.request(OutcomeProviderError)
		r.logger.ErrorContext(ctx, "mail provider rejected message",
			slog.String("provider", pe.Provider),
			slog.Int("status", pe.StatusCode),
			slog.String("name", pe.Name),
			slog.String("details", sanitizer.StripHTML(pe.Message)),
		)

		details := pe.Message
		if details == "" {
			details = msgUnknownError
		}
		return Result{
			Status: providerStatus(pe.StatusCode),
			Body:   ProviderErrorBody{Error: msgSendFailed, Details: details},
		}
	}

	r.metrics.providerCall(OutcomeInternalError, elapsed)
	r.metrics.request(OutcomeInternalError)
	r.logger.ErrorContext(ctx, "mail send failed", slog.Any("error", err))
	return Result{
		Status: http.StatusInternalServerError,
		Body:   InternalErrorBody{Error: msgInternal, Message: err.Error()},
	}
}

// providerStatus forwards the provider's status when it is a valid non-success
// status a client can receive, and maps anything else to 502.
func providerStatus(code int) int {
	if code >= 300 && code <= 599 {
		return code
	}
	return http.StatusBadGateway
}
