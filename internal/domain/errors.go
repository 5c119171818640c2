package domain

import (
	"errors"
)

// Common domain errors
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnknownKind     = errors.New("unknown filesystem kind")
	ErrUnsupportedHost = errors.New("mount table is not supported on this platform")
)

// ExtractionError represents a failed capacity extraction attempt.
// Every failure mode of the extraction tasks surfaces as this single
// type carrying a human-readable reason; callers decide whether to
// retry.
type ExtractionError struct {
	Reason string
	Err    error
}

// Error returns the error message
func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return e.Reason + ": " + e.Err.Error()
	}
	return e.Reason
}

// Unwrap returns the underlying error
func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError creates a new extraction error
func NewExtractionError(reason string, err error) *ExtractionError {
	return &ExtractionError{Reason: reason, Err: err}
}

// IsExtractionError returns true if err is (or wraps) an ExtractionError
func IsExtractionError(err error) bool {
	var ee *ExtractionError
	return errors.As(err, &ee)
}
