package relay

import "errors"

var (
	// ErrNoSender is returned by New when no mail sender is given.
	ErrNoSender = errors.New("relay: sender is required")

	// ErrBodyTooLarge is reported when the inbound body exceeds Config.MaxBodyBytes.
	ErrBodyTooLarge = errors.New("relay: request body too large")
)
