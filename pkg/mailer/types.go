package mailer

import "fmt"

// Recipient formats a name and email into RFC 5322 address format.
// Returns "Name <email>" if name is provided, otherwise just email.
func Recipient(name, email string) string {
	if name == "" {
		return email
	}
	return fmt.Sprintf("%s <%s>", name, email)
}

// Email is a fully-prepared message ready for a single provider send.
// Optional fields left empty are omitted from the provider request.
type Email struct {
	From    string   // Sender identity, always set by the server
	ReplyTo string   // Reply-to address (optional)
	Subject string   // Email subject
	HTML    string   // HTML body content
	To      []string // Recipients
}
