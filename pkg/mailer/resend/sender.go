package resend

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/resend/resend-go/v3"

	"github.com/acksites/quoterelay/pkg/mailer"
)

// ProviderName identifies Resend in errors and logs.
const ProviderName = "resend"

// Sender implements mailer.Sender using the Resend API.
type Sender struct {
	client *resend.Client
	config Config
}

// New creates a new Resend sender.
// An empty APIKey yields a sender whose Send always returns mailer.ErrNotConfigured.
func New(cfg Config) (*Sender, error) {
	var base *url.URL
	if cfg.BaseURL != "" {
		u, err := url.Parse(cfg.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("resend: invalid base url: %w", err)
		}
		if u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("resend: invalid base url %q", cfg.BaseURL)
		}
		base = u
	}

	httpClient := &http.Client{
		Timeout:   cfg.Timeout,
		Transport: newCaptureTransport(http.DefaultTransport, base),
	}

	return &Sender{
		client: resend.NewCustomClient(httpClient, cfg.APIKey),
		config: cfg,
	}, nil
}

// Send implements mailer.Sender.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) (string, error) {
	if s.config.APIKey == "" {
		return "", mailer.ErrNotConfigured
	}

	req := &resend.SendEmailRequest{
		From:    email.From,
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTML,
		ReplyTo: email.ReplyTo,
	}

	ex := &exchange{}
	resp, err := s.client.Emails.SendWithContext(withExchange(ctx, ex), req)

	// The SDK flattens provider errors into strings; the transport keeps the
	// status and message so they can be surfaced to the caller unchanged.
	if ex.decodeErr != nil {
		return "", fmt.Errorf("resend: status %d: %w", ex.status, ex.decodeErr)
	}
	if ex.status != 0 && !isSuccess(ex.status) {
		return "", &mailer.ProviderError{
			Provider:   ProviderName,
			StatusCode: ex.status,
			Name:       ex.name,
			Message:    ex.message,
		}
	}
	if err != nil {
		return "", fmt.Errorf("resend: failed to send email: %w", err)
	}
	if resp == nil {
		return "", errors.New("resend: empty response")
	}

	return resp.Id, nil
}

// Healthcheck reports whether the sender has a credential to send with.
// It never calls the provider.
func Healthcheck(s *Sender) func(context.Context) error {
	return func(context.Context) error {
		if s == nil || s.config.APIKey == "" {
			return mailer.ErrNotConfigured
		}
		return nil
	}
}
