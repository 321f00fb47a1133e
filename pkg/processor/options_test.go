package processor

import (
	"errors"
	"testing"
	"time"

	daederrors "github.com/wehubfusion/Daedalus/pkg/errors"
)

func TestNew_RejectsInvalidOptions(t *testing.T) {
	testCases := []struct {
		name string
		opts Options
	}{
		{"negative batch size", DefaultOptions().WithBatchSize(-1)},
		{"negative batch delay", DefaultOptions().WithBatchDelay(-time.Second)},
		{"negative max workers", DefaultOptions().WithMaxWorkers(-2)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.opts); !errors.Is(err, daederrors.ErrInvalidOptions) {
				t.Fatalf("expected ErrInvalidOptions, got %v", err)
			}
		})
	}
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	if opts.BatchSize != 1000 {
		t.Fatalf("expected default batch size 1000, got %d", opts.BatchSize)
	}
	if opts.ShallowProcessing {
		t.Fatal("expected deep processing on by default")
	}
	if opts.PartialResults || opts.UseWorkerPool {
		t.Fatal("partial results and worker pool must default off")
	}
}

func TestValidate_AppliesDefaults(t *testing.T) {
	validated, err := Options{}.validate()
	if err != nil {
		t.Fatalf("zero options must validate: %v", err)
	}
	if validated.BatchSize != 1000 {
		t.Fatalf("expected batch size default 1000, got %d", validated.BatchSize)
	}
	if validated.MaxWorkers < 1 {
		t.Fatalf("expected positive default max workers, got %d", validated.MaxWorkers)
	}
	if validated.Transform == nil {
		t.Fatal("expected identity transform default")
	}
	if validated.Emitter == nil {
		t.Fatal("expected no-op emitter default")
	}
	if validated.Logger == nil {
		t.Fatal("expected no-op logger default")
	}
}

func TestValidate_MaxWorkersFromEnv(t *testing.T) {
	t.Setenv("DAEDALUS_WORKERS", "13")

	validated, err := Options{}.validate()
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if validated.MaxWorkers != 13 {
		t.Fatalf("expected MaxWorkers 13 from env, got %d", validated.MaxWorkers)
	}
}
