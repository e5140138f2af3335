package mailer

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConfigured indicates the provider credential is missing.
	ErrNotConfigured = errors.New("mail provider is not configured")

	// ErrSendFailed indicates email sending failed.
	ErrSendFailed = errors.New("failed to send email")
)

// ProviderError is returned when the provider answered the send request
// with a non-success status.
type ProviderError struct {
	Provider   string // Provider name, e.g. "resend"
	Name       string // Provider error name, if any
	Message    string // Provider error message, empty when the body had none
	StatusCode int    // HTTP status returned by the provider
}

func (e *ProviderError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: status %d", e.Provider, e.StatusCode)
	}
	return fmt.Sprintf("%s: status %d: %s", e.Provider, e.StatusCode, e.Message)
}

// Is reports ErrSendFailed as a match so callers can test the category.
func (e *ProviderError) Is(target error) bool {
	return target == ErrSendFailed
}

// AsProviderError extracts a ProviderError from the error chain.
func AsProviderError(err error) (*ProviderError, bool) {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
