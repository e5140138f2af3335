package resend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// maxErrorBody caps how much of a provider error body is buffered.
const maxErrorBody = 64 << 10

// exchange records the outcome of the provider round trip for one Send call.
type exchange struct {
	decodeErr error
	name      string
	message   string
	status    int
}

type exchangeKey struct{}

func withExchange(ctx context.Context, ex *exchange) context.Context {
	return context.WithValue(ctx, exchangeKey{}, ex)
}

// errorPayload is the error body returned by the Resend API.
type errorPayload struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

// captureTransport points requests at the configured base URL and records
// the provider status and error message for the Send call that issued them.
// An error body that is not JSON is recorded as a decode failure.
type captureTransport struct {
	next http.RoundTripper
	base *url.URL
}

func newCaptureTransport(next http.RoundTripper, base *url.URL) *captureTransport {
	return &captureTransport{next: next, base: base}
}

func (t *captureTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.base != nil {
		req = req.Clone(req.Context())
		req.URL.Scheme = t.base.Scheme
		req.URL.Host = t.base.Host
		req.Host = t.base.Host
		if prefix := strings.TrimSuffix(t.base.Path, "/"); prefix != "" {
			req.URL.Path = prefix + req.URL.Path
		}
	}

	resp, err := t.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	ex, ok := req.Context().Value(exchangeKey{}).(*exchange)
	if !ok {
		return resp, nil
	}
	ex.status = resp.StatusCode
	if isSuccess(resp.StatusCode) {
		return resp, nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	_ = resp.Body.Close()
	if err != nil {
		ex.decodeErr = fmt.Errorf("read error response: %w", err)
	} else {
		var payload errorPayload
		if err := json.Unmarshal(body, &payload); err != nil {
			ex.decodeErr = fmt.Errorf("decode error response: %w", err)
		} else {
			ex.name = payload.Name
			ex.message = payload.Message
		}
	}
	resp.Body = io.NopCloser(bytes.NewReader(body))

	return resp, nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
