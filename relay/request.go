package relay

// Request is the message-composition payload posted by the quote form.
type Request struct {
	// To is used only when no recipient is configured.
	To string `json:"to"`
	// From is accepted for compatibility and ignored.
	From    string `json:"from"`
	Subject string `json:"subject" validate:"required"`
	// ReplyTo is optional; null and "" both mean absent.
	ReplyTo string `json:"replyTo"`
	HTML    string `json:"html" validate:"required"`
}

// Result is the status and JSON body the endpoint answers with.
type Result struct {
	Body   any
	Status int
}

// ErrorBody is returned for method, validation and configuration failures.
type ErrorBody struct {
	Error string `json:"error"`
}

// ProviderErrorBody is returned when the mail provider rejects the message.
type ProviderErrorBody struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

// InternalErrorBody is returned for transport and unexpected failures.
type InternalErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// SuccessBody is returned when the provider accepted the message.
type SuccessBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id"`
}

// Response messages.
const (
	msgMethodNotAllowed = "Method not allowed"
	msgMissingFields    = "Missing required fields"
	msgConfiguration    = "Server configuration error"
	msgSendFailed       = "Failed to send email"
	msgUnknownError     = "Unknown error"
	msgInternal         = "Internal server error"
	msgSent             = "Email sent successfully"
	msgNotFound         = "Not found"
)
