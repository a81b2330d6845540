package validators

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validate is a type alias for validator.Validate.
type Validate = validator.Validate

// ValidationErrors is a type alias for validator.ValidationErrors.
type ValidationErrors = validator.ValidationErrors

// FieldError is a type alias for validator.FieldError.
type FieldError = validator.FieldError

// New creates a new validator instance.
func New() *Validate {
	return validator.New()
}

// Messages flattens a validation error into one readable entry per field,
// e.g. "server.port (max=65535)". Errors of other types yield their text.
func Messages(err error) []string {
	var ve ValidationErrors
	if !errors.As(err, &ve) {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(ve))
	for _, e := range ve {
		messages = append(messages, formatFieldError(e))
	}
	return messages
}

func formatFieldError(e FieldError) string {
	field := e.Field()

	// "Config.Server.Port" -> "server.port"
	if ns := e.StructNamespace(); ns != "" {
		if parts := strings.Split(ns, "."); len(parts) >= 2 {
			field = strings.ToLower(strings.Join(parts[1:], "."))
		}
	}

	switch tag := e.Tag(); tag {
	case "required":
		return fmt.Sprintf("%s (required)", field)
	case "min", "max", "oneof":
		return fmt.Sprintf("%s (%s=%s)", field, tag, e.Param())
	default:
		return fmt.Sprintf("%s (%s)", field, tag)
	}
}
