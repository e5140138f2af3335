package health

import "errors"

var (
	// ErrCheckFailed is the generic reason reported for a failed check.
	ErrCheckFailed = errors.New("health: check failed")

	// ErrCheckTimeout is reported when a check outlives the readiness timeout.
	ErrCheckTimeout = errors.New("health: check timeout")
)
