// Package mailer defines the provider-neutral email sending contract.
//
// The package separates the message shape (Email) from the provider that
// delivers it (Sender), so the relay can be tested with an in-memory sender
// and deployed against Resend without code changes.
//
// # Usage
//
//	import (
//		"context"
//		"os"
//
//		"github.com/acksites/quoterelay/pkg/mailer"
//		"github.com/acksites/quoterelay/pkg/mailer/resend"
//	)
//
//	func main() {
//		sender, err := resend.New(resend.Config{
//			APIKey: os.Getenv("RESEND_API_KEY"),
//		})
//		if err != nil {
//			panic(err)
//		}
//
//		id, err := sender.Send(context.Background(), &mailer.Email{
//			From:    mailer.Recipient("Lima Cleaning Service", "noreply@mail.acksites.com"),
//			To:      []string{"office@example.com"},
//			Subject: "New Quote Request from Jane",
//			HTML:    "<p>Hello!</p>",
//		})
//		if err != nil {
//			if pe, ok := mailer.AsProviderError(err); ok {
//				// provider rejected the message: pe.StatusCode, pe.Message
//			}
//			panic(err)
//		}
//		_ = id
//	}
//
// # Errors
//
//   - ErrNotConfigured: the provider credential is missing
//   - ErrSendFailed: matched by errors.Is for every provider rejection
//   - *ProviderError: the provider answered with a non-success status
//
// Senders make exactly one attempt per call. Retrying is left to the caller.
package mailer
