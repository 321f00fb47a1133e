// Package errors defines the error values shared across the Daedalus processing
// pipeline.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidOptions indicates that the processing options are invalid
	ErrInvalidOptions = errors.New("invalid processing options")

	// ErrEmptyStream indicates that the input stream contained no data
	ErrEmptyStream = errors.New("empty input stream")

	// ErrDecodeFailed indicates that the input could not be decoded into a tree value
	ErrDecodeFailed = errors.New("input decode failed")

	// ErrPoolStartup indicates that the worker pool could not be started
	ErrPoolStartup = errors.New("worker pool startup failed")

	// ErrJobRunning indicates that a job is already in flight on this processor
	ErrJobRunning = errors.New("job already running")
)

// ProcessingError wraps a per-item or per-phase failure with its position in
// the job.
type ProcessingError struct {
	// ItemIndex is the index of the item being processed (-1 if not item-bound)
	ItemIndex int
	// Phase indicates which phase of processing failed
	Phase string
	// Cause is the underlying error
	Cause error
}

// Error implements the error interface
func (e *ProcessingError) Error() string {
	if e.ItemIndex >= 0 {
		return fmt.Sprintf("processing error at item %d during %s: %v", e.ItemIndex, e.Phase, e.Cause)
	}
	return fmt.Sprintf("processing error during %s: %v", e.Phase, e.Cause)
}

// Unwrap returns the underlying error
func (e *ProcessingError) Unwrap() error {
	return e.Cause
}

// NewProcessingError creates a new processing error
func NewProcessingError(itemIndex int, phase string, cause error) *ProcessingError {
	return &ProcessingError{
		ItemIndex: itemIndex,
		Phase:     phase,
		Cause:     cause,
	}
}

// IsFatal reports whether an error belongs to one of the categories that fail
// a whole call rather than a single item.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrInvalidOptions) ||
		errors.Is(err, ErrEmptyStream) ||
		errors.Is(err, ErrDecodeFailed)
}
