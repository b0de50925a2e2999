package apperr

import (
	"errors"
	"fmt"
)

// Request-local failure taxonomy. Every mutating endpoint maps one of
// these onto an HTTP status; there are no retries and no partial commits.
var (
	ErrForbidden    = errors.New("forbidden")
	ErrStepLocked   = errors.New("step is locked")
	ErrNotSubmitted = errors.New("step is not submitted")
	ErrNotFound     = errors.New("not found")
)

// ValidationError carries field-level messages so the client can
// re-render the form with the user's input preserved.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed (%d fields)", len(e.Fields))
}

func Validation(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}
