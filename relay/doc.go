// Package relay implements the quote request endpoint.
//
// The browser form posts a JSON message to the endpoint; the relay checks
// it, attaches the server-held provider credential and forwards exactly one
// email through a mailer.Sender. The credential never leaves the server.
//
// Gates run in order and the first failure answers the request:
//
//	method != POST            405 {"error":"Method not allowed"}
//	body does not parse       400 {"error":"Missing required fields"}
//	subject or html empty     400 {"error":"Missing required fields"}
//	no API key configured     500 {"error":"Server configuration error"}
//	provider rejects          provider status, {"error":"Failed to send email","details":...}
//	transport or other error  500 {"error":"Internal server error","message":...}
//	accepted                  200 {"success":true,"message":"Email sent successfully","id":...}
//
// [Relay.Handle] is independent of any HTTP framework. [Handler] mounts it
// on the app router.
//
//	sender, _ := resend.New(resend.Config{APIKey: key})
//	r, _ := relay.New(sender, relay.Config{APIKey: key, Recipient: "office@example.com"},
//	    relay.WithLogger(log),
//	    relay.WithMetrics(relay.NewMetrics(prometheus.DefaultRegisterer)),
//	)
//	app := quoterelay.New(quoterelay.WithHandlers(relay.NewHandler(r)))
package relay
