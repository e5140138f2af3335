package relay

import (
	"math"

	"github.com/acksites/quoterelay/pkg/mailer"
)

// Defaults applied by New when the corresponding Config field is empty.
const (
	DefaultSenderName    = "Lima Cleaning Service"
	DefaultSenderAddress = "noreply@mail.acksites.com"
	DefaultPath          = "/api/contact"
	DefaultMaxBodyBytes  = 1 << 20
)

// DefaultSender is the fixed "from" identity used when none is configured.
var DefaultSender = mailer.Recipient(DefaultSenderName, DefaultSenderAddress)

// Config is resolved once at process start and never re-read per request.
type Config struct {
	// APIKey is the provider credential. Empty means every send fails closed with 500.
	APIKey string `env:"RESEND_API_KEY"`

	// Recipient overrides the caller-supplied "to" when set.
	Recipient string `env:"CONTACT_EMAIL"`

	// Sender is the fixed "from" identity; the caller's "from" is ignored.
	Sender string `env:"RELAY_SENDER" envDefault:"Lima Cleaning Service <noreply@mail.acksites.com>"`

	// Path is the route the endpoint is mounted on.
	Path string `env:"RELAY_PATH" envDefault:"/api/contact"`

	// MaxBodyBytes caps the inbound body; larger bodies are rejected as invalid.
	MaxBodyBytes int64 `env:"RELAY_MAX_BODY_BYTES" envDefault:"1048576"`

	// SanitizeHTML passes the message body through an email-safe HTML policy.
	SanitizeHTML bool `env:"RELAY_SANITIZE_HTML" envDefault:"false"`
}

func (c Config) withDefaults() Config {
	if c.Sender == "" {
		c.Sender = DefaultSender
	}
	if c.Path == "" {
		c.Path = DefaultPath
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
	// decode reads one byte past the limit to detect oversize bodies.
	if c.MaxBodyBytes == math.MaxInt64 {
		c.MaxBodyBytes--
	}
	return c
}
