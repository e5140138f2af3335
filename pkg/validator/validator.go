package validator

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	playground "github.com/go-playground/validator/v10"
)

var (
	instance *playground.Validate
	initOnce sync.Once
)

func validate() *playground.Validate {
	initOnce.Do(func() {
		instance = playground.New(playground.WithRequiredStructEnabled())
		// Report JSON field names so errors match what the client sent.
		instance.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
	})
	return instance
}

// ValidateStruct validates v against its `validate` tags.
// Returns a ValidationErrors value on rule failures and a plain error when v
// cannot be validated at all (e.g. nil or not a struct).
func ValidateStruct(v any) error {
	err := validate().Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs playground.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, newFieldError(fe))
	}
	return out
}

func newFieldError(fe playground.FieldError) FieldError {
	return FieldError{
		Field:   fe.Field(),
		Message: message(fe),
		Rule:    fe.Tag(),
	}
}

func message(fe playground.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "max":
		return "must be at most " + fe.Param() + " characters long"
	case "min":
		return "must be at least " + fe.Param() + " characters long"
	default:
		return "is invalid"
	}
}
