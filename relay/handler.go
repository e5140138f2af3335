package relay

import (
	"net/http"

	"github.com/acksites/quoterelay"
	"github.com/acksites/quoterelay/middlewares"
)

// Handler binds a Relay to the app router.
type Handler struct {
	relay *Relay
}

// NewHandler creates the HTTP binding for r.
func NewHandler(r *Relay) *Handler {
	return &Handler{relay: r}
}

// Routes mounts the endpoint for every method; the relay owns the method check.
func (h *Handler) Routes(r quoterelay.Router) {
	r.ANY(h.relay.Path(), h.contact)
}

func (h *Handler) contact(c quoterelay.Context) error {
	res := h.relay.Handle(c, c.Request().Method, c.Request().Body)
	return c.JSON(res.Status, res.Body)
}

// ErrorHandler renders handler errors in the relay's JSON envelope.
// HTTP errors keep their status; anything else becomes a 500.
// Recovered panics were already logged by the recover middleware.
func ErrorHandler(c quoterelay.Context, err error) error {
	if he := quoterelay.AsHTTPError(err); he != nil {
		return c.JSON(he.Code, ErrorBody{Error: he.Message})
	}

	message := err.Error()
	if middlewares.IsPanicError(err) {
		message = http.StatusText(http.StatusInternalServerError)
	} else {
		c.LogError("unhandled error", "error", err)
	}

	return c.JSON(http.StatusInternalServerError, InternalErrorBody{Error: msgInternal, Message: message})
}

// NotFound answers unknown routes with a JSON 404.
func NotFound(c quoterelay.Context) error {
	return c.JSON(http.StatusNotFound, ErrorBody{Error: msgNotFound})
}

// MethodNotAllowed answers routes registered for other methods with a JSON 405.
func MethodNotAllowed(c quoterelay.Context) error {
	return c.JSON(http.StatusMethodNotAllowed, ErrorBody{Error: msgMethodNotAllowed})
}
