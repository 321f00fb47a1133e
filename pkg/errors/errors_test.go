package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestProcessingError_Message(t *testing.T) {
	itemErr := NewProcessingError(3, "transform", errors.New("bad value"))
	if got := itemErr.Error(); got != "processing error at item 3 during transform: bad value" {
		t.Fatalf("unexpected message %q", got)
	}

	phaseErr := NewProcessingError(-1, "decode", ErrDecodeFailed)
	if got := phaseErr.Error(); got != "processing error during decode: input decode failed" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestProcessingError_Unwrap(t *testing.T) {
	err := NewProcessingError(-1, "decode", fmt.Errorf("%w: unexpected end of input", ErrDecodeFailed))
	if !errors.Is(err, ErrDecodeFailed) {
		t.Fatal("expected wrapped sentinel to survive unwrapping")
	}

	var pe *ProcessingError
	if !errors.As(err, &pe) || pe.Phase != "decode" {
		t.Fatalf("expected ProcessingError with decode phase, got %+v", pe)
	}
}

func TestIsFatal(t *testing.T) {
	fatal := []error{
		ErrInvalidOptions,
		ErrEmptyStream,
		ErrDecodeFailed,
		NewProcessingError(-1, "decode", ErrEmptyStream),
		fmt.Errorf("%w: batch size must be positive", ErrInvalidOptions),
	}
	for _, err := range fatal {
		if !IsFatal(err) {
			t.Errorf("expected %v to be fatal", err)
		}
	}

	nonFatal := []error{
		nil,
		ErrPoolStartup,
		ErrJobRunning,
		errors.New("transform panic: boom"),
	}
	for _, err := range nonFatal {
		if IsFatal(err) {
			t.Errorf("expected %v to be non-fatal", err)
		}
	}
}
