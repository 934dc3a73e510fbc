package usecase

import (
	"errors"
	"strings"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("forbidden")
	ErrDuplicateEmail        = errors.New("email is already registered")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// FieldError describes one rejected request field by its wire name.
type FieldError struct {
	Field  string
	Reason string
}

// ValidationError lists every rejected field of a request. It matches ErrInvalidInput.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	missing := make([]string, 0, len(e.Fields))
	invalid := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		if f.Reason == FieldReasonMissing {
			missing = append(missing, f.Field)
			continue
		}
		invalid = append(invalid, f.Field)
	}

	parts := make([]string, 0, 2)
	if len(missing) > 0 {
		parts = append(parts, "missing required fields: "+strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		parts = append(parts, "invalid fields: "+strings.Join(invalid, ", "))
	}
	if len(parts) == 0 {
		return ErrInvalidInput.Error()
	}
	return ErrInvalidInput.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// MissingFields returns the names of fields rejected for being absent.
func (e *ValidationError) MissingFields() []string {
	out := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		if f.Reason == FieldReasonMissing {
			out = append(out, f.Field)
		}
	}
	return out
}

const (
	FieldReasonMissing = "missingField"
	FieldReasonInvalid = "invalidField"
)
