package exam

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is matched by every *ValidationError.
	ErrValidation = errors.New("invalid request")

	ErrSubjectNotAllowed = errors.New("subject not allowed for exam and track")
	ErrTokenExpired      = errors.New("token expired")
	// ErrUnknownCategory is returned by Explain for a payload whose subject
	// has no generators.
	ErrUnknownCategory = errors.New("unknown category")
)

// ValidationError describes a caller-correctable request problem.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Msg)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Msg: fmt.Sprintf(format, args...)}
}
