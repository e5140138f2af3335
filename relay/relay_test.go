package relay_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acksites/quoterelay/pkg/mailer"
	"github.com/acksites/quoterelay/relay"
)

// fakeSender records every message it is asked to send.
type fakeSender struct {
	mu   sync.Mutex
	sent []*mailer.Email
	ctxs []context.Context
	id   string
	err  error
}

func (f *fakeSender) Send(ctx context.Context, email *mailer.Email) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, email)
	f.ctxs = append(f.ctxs, ctx)
	return f.id, f.err
}

func (f *fakeSender) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func (f *fakeSender) last() *mailer.Email {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sent[len(f.sent)-1]
}

// logSink collects JSON log records.
type logSink struct {
	buf bytes.Buffer
}

func (s *logSink) logger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(&s.buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func (s *logSink) records(minLevel slog.Level) []map[string]any {
	var out []map[string]any
	dec := json.NewDecoder(bytes.NewReader(s.buf.Bytes()))
	for dec.More() {
		m := map[string]any{}
		if dec.Decode(&m) != nil {
			break
		}
		var lvl slog.Level
		_ = lvl.UnmarshalText([]byte(m["level"].(string)))
		if lvl >= minLevel {
			out = append(out, m)
		}
	}
	return out
}

type fixture struct {
	relay  *relay.Relay
	sender *fakeSender
	logs   *logSink
	reg    *prometheus.Registry
}

func newFixture(t *testing.T, cfg relay.Config, sender *fakeSender) *fixture {
	t.Helper()

	if sender == nil {
		sender = &fakeSender{id: "email_123"}
	}
	logs := &logSink{}
	reg := prometheus.NewRegistry()

	r, err := relay.New(sender, cfg, relay.WithLogger(logs.logger()), relay.WithMetrics(relay.NewMetrics(reg)))
	require.NoError(t, err)

	return &fixture{relay: r, sender: sender, logs: logs, reg: reg}
}

func configured() relay.Config {
	return relay.Config{APIKey: "re_test", Recipient: "office@example.com"}
}

func post(f *fixture, body string) relay.Result {
	return f.relay.Handle(context.Background(), http.MethodPost, strings.NewReader(body))
}

const validBody = `{"to":"caller@example.com","from":"Jane <jane@example.com>","subject":"New Quote Request from Jane","replyTo":"jane@example.com","html":"<p>3 bedrooms</p>"}`

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := relay.New(nil, relay.Config{})
	require.ErrorIs(t, err, relay.ErrNoSender)

	r, err := relay.New(&fakeSender{}, relay.Config{})
	require.NoError(t, err)
	assert.Equal(t, relay.DefaultPath, r.Path())
}

func TestRelay_MethodGate(t *testing.T) {
	t.Parallel()

	f := newFixture(t, configured(), nil)

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete, http.MethodPatch, http.MethodOptions, http.MethodHead} {
		res := f.relay.Handle(context.Background(), method, strings.NewReader(validBody))
		assert.Equal(t, http.StatusMethodNotAllowed, res.Status, method)
		assert.Equal(t, relay.ErrorBody{Error: "Method not allowed"}, res.Body, method)
	}

	assert.Zero(t, f.sender.calls())
	assert.Empty(t, f.logs.records(slog.LevelDebug))
}

func TestRelay_InvalidBody(t *testing.T) {
	t.Parallel()

	bodies := map[string]string{
		"not json":     `subject=hi`,
		"empty":        ``,
		"array":        `[1,2,3]`,
		"wrong type":   `{"subject":42,"html":"<p>x</p>"}`,
		"trailing":     `{"subject":"a","html":"b"} {}`,
		"truncated":    `{"subject":"a",`,
		"object as to": `{"subject":"a","html":"b","to":{"x":1}}`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t, configured(), nil)
			res := post(f, body)

			assert.Equal(t, http.StatusBadRequest, res.Status)
			assert.Equal(t, relay.ErrorBody{Error: "Missing required fields"}, res.Body)
			assert.Zero(t, f.sender.calls())
			assert.Len(t, f.logs.records(slog.LevelDebug), 1)
		})
	}

	t.Run("nil reader", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, configured(), nil)
		res := f.relay.Handle(context.Background(), http.MethodPost, nil)
		assert.Equal(t, http.StatusBadRequest, res.Status)
	})

	t.Run("oversize", func(t *testing.T) {
		t.Parallel()

		cfg := configured()
		cfg.MaxBodyBytes = 64
		f := newFixture(t, cfg, nil)

		res := post(f, `{"subject":"a","html":"`+strings.Repeat("x", 100)+`"}`)
		assert.Equal(t, http.StatusBadRequest, res.Status)
		assert.Equal(t, relay.ErrorBody{Error: "Missing required fields"}, res.Body)
		assert.Zero(t, f.sender.calls())
	})
}

func TestRelay_MissingFields(t *testing.T) {
	t.Parallel()

	bodies := map[string]string{
		"no subject":    `{"html":"<p>x</p>"}`,
		"no html":       `{"subject":"Quote"}`,
		"empty subject": `{"subject":"","html":"<p>x</p>"}`,
		"empty html":    `{"subject":"Quote","html":""}`,
		"null subject":  `{"subject":null,"html":"<p>x</p>"}`,
		"empty object":  `{}`,
		"null":          `null`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t, configured(), nil)
			res := post(f, body)

			assert.Equal(t, http.StatusBadRequest, res.Status)
			assert.Equal(t, relay.ErrorBody{Error: "Missing required fields"}, res.Body)
			assert.Zero(t, f.sender.calls())
			assert.Len(t, f.logs.records(slog.LevelDebug), 1)
		})
	}

	t.Run("logs failing fields", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, configured(), nil)
		post(f, `{"from":"jane@example.com"}`)

		warns := f.logs.records(slog.LevelWarn)
		require.Len(t, warns, 1)
		assert.Equal(t, []any{"subject", "html"}, warns[0]["fields"])
	})

	t.Run("validation runs before credential check", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, relay.Config{}, nil)
		res := post(f, `{"subject":"Quote"}`)
		assert.Equal(t, http.StatusBadRequest, res.Status)
	})
}

func TestRelay_MissingCredential(t *testing.T) {
	t.Parallel()

	f := newFixture(t, relay.Config{Recipient: "office@example.com"}, nil)
	res := post(f, validBody)

	assert.Equal(t, http.StatusInternalServerError, res.Status)
	assert.Equal(t, relay.ErrorBody{Error: "Server configuration error"}, res.Body)
	assert.Zero(t, f.sender.calls())

	errs := f.logs.records(slog.LevelError)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0]["error"], "RESEND_API_KEY")

	raw, err := json.Marshal(res.Body)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "RESEND_API_KEY")
	assert.Equal(t, float64(1), outcomes(t, f, relay.OutcomeNotConfigured))
}

func TestRelay_SenderNotConfigured(t *testing.T) {
	t.Parallel()

	f := newFixture(t, configured(), &fakeSender{err: mailer.ErrNotConfigured})
	res := post(f, validBody)

	assert.Equal(t, http.StatusInternalServerError, res.Status)
	assert.Equal(t, relay.ErrorBody{Error: "Server configuration error"}, res.Body)
	assert.Len(t, f.logs.records(slog.LevelError), 1)
}

func TestRelay_Compose(t *testing.T) {
	t.Parallel()

	t.Run("configured recipient wins and sender is fixed", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, configured(), nil)
		res := post(f, validBody)
		require.Equal(t, http.StatusOK, res.Status)

		email := f.sender.last()
		assert.Equal(t, []string{"office@example.com"}, email.To)
		assert.Equal(t, relay.DefaultSender, email.From)
		assert.Equal(t, "New Quote Request from Jane", email.Subject)
		assert.Equal(t, "<p>3 bedrooms</p>", email.HTML)
		assert.Equal(t, "jane@example.com", email.ReplyTo)
	})

	t.Run("caller recipient used when none configured", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, relay.Config{APIKey: "re_test", Sender: "Acme <noreply@acme.test>"}, nil)
		require.Equal(t, http.StatusOK, post(f, validBody).Status)

		email := f.sender.last()
		assert.Equal(t, []string{"caller@example.com"}, email.To)
		assert.Equal(t, "Acme <noreply@acme.test>", email.From)
	})

	t.Run("empty recipient passes through", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, relay.Config{APIKey: "re_test"}, nil)
		require.Equal(t, http.StatusOK, post(f, `{"subject":"a","html":"b"}`).Status)
		assert.Equal(t, []string{""}, f.sender.last().To)
	})

	for name, body := range map[string]string{
		"absent reply-to": `{"subject":"a","html":"b"}`,
		"null reply-to":   `{"subject":"a","html":"b","replyTo":null}`,
		"empty reply-to":  `{"subject":"a","html":"b","replyTo":""}`,
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t, configured(), nil)
			require.Equal(t, http.StatusOK, post(f, body).Status)
			assert.Empty(t, f.sender.last().ReplyTo)
		})
	}

	t.Run("html forwarded verbatim by default", func(t *testing.T) {
		t.Parallel()

		html := `<p onclick="x()">Hi</p><script>alert(1)</script>`
		f := newFixture(t, configured(), nil)
		body, _ := json.Marshal(map[string]string{"subject": "a", "html": html})
		require.Equal(t, http.StatusOK, post(f, string(body)).Status)
		assert.Equal(t, html, f.sender.last().HTML)
	})

	t.Run("html sanitized when enabled", func(t *testing.T) {
		t.Parallel()

		cfg := configured()
		cfg.SanitizeHTML = true
		f := newFixture(t, cfg, nil)

		body, _ := json.Marshal(map[string]string{"subject": "a", "html": `<p onclick="x()">Hi</p><script>alert(1)</script>`})
		require.Equal(t, http.StatusOK, post(f, string(body)).Status)
		assert.Contains(t, f.sender.last().HTML, "<p>Hi</p>")
		assert.NotContains(t, f.sender.last().HTML, "script")
	})

	t.Run("html that sanitizes to nothing is missing", func(t *testing.T) {
		t.Parallel()

		cfg := configured()
		cfg.SanitizeHTML = true
		f := newFixture(t, cfg, nil)

		res := post(f, `{"subject":"a","html":"<script>alert(1)</script>"}`)
		assert.Equal(t, http.StatusBadRequest, res.Status)
		assert.Zero(t, f.sender.calls())
	})
}

func TestRelay_Success(t *testing.T) {
	t.Parallel()

	f := newFixture(t, configured(), &fakeSender{id: "4ef9a417-02e9-4d39-ad75-9611e0fcc33c"})
	res := post(f, validBody)

	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, relay.SuccessBody{
		Success: true,
		Message: "Email sent successfully",
		ID:      "4ef9a417-02e9-4d39-ad75-9611e0fcc33c",
	}, res.Body)
	assert.Equal(t, 1, f.sender.calls())
	assert.Empty(t, f.logs.records(slog.LevelWarn))
	assert.Equal(t, float64(1), outcomes(t, f, relay.OutcomeSent))

	raw, err := json.Marshal(res.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"message":"Email sent successfully","id":"4ef9a417-02e9-4d39-ad75-9611e0fcc33c"}`, string(raw))
}

func TestRelay_ProviderError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantDetail string
	}{
		{
			name:       "status and message forwarded",
			err:        &mailer.ProviderError{Provider: "resend", StatusCode: 422, Name: "validation_error", Message: "Invalid `to` field."},
			wantStatus: http.StatusUnprocessableEntity,
			wantDetail: "Invalid `to` field.",
		},
		{
			name:       "unauthorized",
			err:        &mailer.ProviderError{Provider: "resend", StatusCode: 401, Message: "API key is invalid"},
			wantStatus: http.StatusUnauthorized,
			wantDetail: "API key is invalid",
		},
		{
			name:       "missing message",
			err:        &mailer.ProviderError{Provider: "resend", StatusCode: 503},
			wantStatus: http.StatusServiceUnavailable,
			wantDetail: "Unknown error",
		},
		{
			name:       "wrapped",
			err:        errors.Join(errors.New("context"), &mailer.ProviderError{StatusCode: 429, Message: "Too many requests"}),
			wantStatus: http.StatusTooManyRequests,
			wantDetail: "Too many requests",
		},
		{
			name:       "status outside client range",
			err:        &mailer.ProviderError{StatusCode: 0, Message: "weird"},
			wantStatus: http.StatusBadGateway,
			wantDetail: "weird",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t, configured(), &fakeSender{err: tt.err})
			res := post(f, validBody)

			assert.Equal(t, tt.wantStatus, res.Status)
			assert.Equal(t, relay.ProviderErrorBody{Error: "Failed to send email", Details: tt.wantDetail}, res.Body)
			assert.Equal(t, 1, f.sender.calls())
			assert.Len(t, f.logs.records(slog.LevelDebug), 1)
			assert.Equal(t, float64(1), outcomes(t, f, relay.OutcomeProviderError))
		})
	}
}

func TestRelay_ProviderErrorLogStripsMarkup(t *testing.T) {
	t.Parallel()

	pe := &mailer.ProviderError{Provider: "resend", StatusCode: 422, Message: "Invalid <b>to</b> field"}
	f := newFixture(t, configured(), &fakeSender{err: pe})
	res := post(f, validBody)

	assert.Equal(t, relay.ProviderErrorBody{Error: "Failed to send email", Details: "Invalid <b>to</b> field"}, res.Body)

	errs := f.logs.records(slog.LevelError)
	require.Len(t, errs, 1)
	assert.Equal(t, "Invalid to field", errs[0]["details"])
}

func TestRelay_LargestBodyLimit(t *testing.T) {
	t.Parallel()

	cfg := configured()
	cfg.MaxBodyBytes = math.MaxInt64
	f := newFixture(t, cfg, nil)

	res := post(f, validBody)
	assert.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, 1, f.sender.calls())
}

func TestRelay_TransportError(t *testing.T) {
	t.Parallel()

	f := newFixture(t, configured(), &fakeSender{err: errors.New("dial tcp: connection refused")})
	res := post(f, validBody)

	assert.Equal(t, http.StatusInternalServerError, res.Status)
	assert.Equal(t, relay.InternalErrorBody{Error: "Internal server error", Message: "dial tcp: connection refused"}, res.Body)
	assert.Equal(t, 1, f.sender.calls())

	recs := f.logs.records(slog.LevelDebug)
	require.Len(t, recs, 1)
	assert.Equal(t, "ERROR", recs[0]["level"])
}

func TestRelay_NoDeduplication(t *testing.T) {
	t.Parallel()

	f := newFixture(t, configured(), nil)
	require.Equal(t, http.StatusOK, post(f, validBody).Status)
	require.Equal(t, http.StatusOK, post(f, validBody).Status)
	assert.Equal(t, 2, f.sender.calls())
}

func TestRelay_NoRetryOnFailure(t *testing.T) {
	t.Parallel()

	f := newFixture(t, configured(), &fakeSender{err: &mailer.ProviderError{StatusCode: 500, Message: "boom"}})
	post(f, validBody)
	assert.Equal(t, 1, f.sender.calls())
}

func TestRelay_PropagatesContext(t *testing.T) {
	t.Parallel()

	type key struct{}
	f := newFixture(t, configured(), nil)
	ctx := context.WithValue(context.Background(), key{}, "req-1")

	f.relay.Handle(ctx, http.MethodPost, strings.NewReader(validBody))
	require.Len(t, f.sender.ctxs, 1)
	assert.Equal(t, "req-1", f.sender.ctxs[0].Value(key{}))
}

func TestRelay_Concurrent(t *testing.T) {
	t.Parallel()

	f := newFixture(t, configured(), nil)

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = f.relay.Handle(context.Background(), http.MethodPost, io.NopCloser(strings.NewReader(validBody)))
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, f.sender.calls())
}

func TestRelay_NilMetrics(t *testing.T) {
	t.Parallel()

	r, err := relay.New(&fakeSender{id: "x"}, configured(), relay.WithMetrics(nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, r.Handle(context.Background(), http.MethodPost, strings.NewReader(validBody)).Status)
}

// outcomes returns quoterelay_requests_total for one outcome label.
func outcomes(t *testing.T, f *fixture, outcome string) float64 {
	t.Helper()

	families, err := f.reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != "quoterelay_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "outcome" && lp.GetValue() == outcome {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}
