package mailer

import "context"

// Sender defines the minimal interface that email providers must implement.
// It accepts a fully-prepared Email and performs exactly one delivery attempt.
type Sender interface {
	// Send delivers an email message and returns the provider-assigned message id.
	// A provider-reported rejection is returned as *ProviderError; any other
	// error means the call itself failed (transport, decoding, cancellation).
	Send(ctx context.Context, email *Email) (string, error)
}
