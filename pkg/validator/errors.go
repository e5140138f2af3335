package validator

import (
	"errors"
	"strings"
)

// FieldError describes a single failed rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Rule    string `json:"rule"`
}

// ValidationErrors is a collection of field errors. It implements error.
type ValidationErrors []FieldError

func (ve ValidationErrors) Error() string {
	parts := make([]string, 0, len(ve))
	for _, e := range ve {
		parts = append(parts, e.Field+" "+e.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Fields returns the names of the fields that failed, in report order.
func (ve ValidationErrors) Fields() []string {
	out := make([]string, 0, len(ve))
	for _, e := range ve {
		out = append(out, e.Field)
	}
	return out
}

// ExtractValidationErrors returns the ValidationErrors in err, or nil.
func ExtractValidationErrors(err error) ValidationErrors {
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}
