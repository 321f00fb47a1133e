package processor

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/wehubfusion/Daedalus/pkg/concurrency"
	"github.com/wehubfusion/Daedalus/pkg/errors"
	"github.com/wehubfusion/Daedalus/pkg/transform"
)

// Options configures one processor. Zero fields mean "use the default"; start
// from DefaultOptions and adjust with the With* methods. Options are immutable
// for the lifetime of a job.
type Options struct {
	// BatchSize is the number of items per batch. Default: 1000.
	// A negative value is an invalid-option error at job start.
	BatchSize int

	// BatchDelay is a cooperative yield between batches. It is what lets a
	// cancellation request take effect between large batches. Default: 0.
	BatchDelay time.Duration

	// ShallowProcessing restricts flattening to the direct children of the
	// root container. The zero value processes every nested node, which is
	// the default.
	ShallowProcessing bool

	// PartialResults emits each batch's results as they complete.
	PartialResults bool

	// UseWorkerPool fans batch items out to a bounded set of goroutines.
	// The Transform must then be safe for concurrent calls: a transform that
	// captures job-specific mutable state must leave this off.
	UseWorkerPool bool

	// MaxWorkers bounds the worker pool. Default: DAEDALUS_WORKERS or the
	// available parallelism (see concurrency.LoadConfig).
	MaxWorkers int

	// Transform is applied to every item. Nil means the identity transform.
	Transform transform.Func

	// Emitter receives lifecycle notifications. Nil means no notifications.
	Emitter Emitter

	// Logger is used for structured logging. Nil means no logging.
	Logger *zap.Logger

	// Tracing optionally bootstraps OpenTelemetry export for this processor.
	Tracing *TracingConfig
}

// DefaultOptions returns the documented defaults: batches of 1000, deep
// processing on, no partial results, sequential execution.
func DefaultOptions() Options {
	return Options{
		BatchSize: 1000,
	}
}

// validate checks the options and applies defaults, returning the effective
// options. Invalid values fail here, before any batch runs.
func (o Options) validate() (Options, error) {
	if o.BatchSize < 0 {
		return o, fmt.Errorf("%w: batch size must be positive, got %d", errors.ErrInvalidOptions, o.BatchSize)
	}
	if o.BatchSize == 0 {
		o.BatchSize = 1000
	}
	if o.BatchDelay < 0 {
		return o, fmt.Errorf("%w: batch delay must be non-negative, got %s", errors.ErrInvalidOptions, o.BatchDelay)
	}
	if o.MaxWorkers < 0 {
		return o, fmt.Errorf("%w: max workers must be positive, got %d", errors.ErrInvalidOptions, o.MaxWorkers)
	}
	if o.MaxWorkers == 0 {
		o.MaxWorkers = concurrency.LoadConfig().Workers
	}
	if o.Transform == nil {
		o.Transform = transform.Identity()
	}
	if o.Emitter == nil {
		o.Emitter = NoOpEmitter{}
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o, nil
}

// WithBatchSize sets the batch size.
func (o Options) WithBatchSize(n int) Options {
	o.BatchSize = n
	return o
}

// WithBatchDelay sets the cooperative yield between batches.
func (o Options) WithBatchDelay(d time.Duration) Options {
	o.BatchDelay = d
	return o
}

// WithShallowProcessing sets whether flattening stops at the root's direct
// children.
func (o Options) WithShallowProcessing(shallow bool) Options {
	o.ShallowProcessing = shallow
	return o
}

// WithPartialResults sets whether batch results are emitted as they complete.
func (o Options) WithPartialResults(enable bool) Options {
	o.PartialResults = enable
	return o
}

// WithWorkerPool sets whether batches fan out to parallel workers.
func (o Options) WithWorkerPool(enable bool) Options {
	o.UseWorkerPool = enable
	return o
}

// WithMaxWorkers sets the worker pool bound.
func (o Options) WithMaxWorkers(n int) Options {
	o.MaxWorkers = n
	return o
}

// WithTransform sets the per-item transform.
func (o Options) WithTransform(fn transform.Func) Options {
	o.Transform = fn
	return o
}

// WithEmitter sets the lifecycle notification receiver.
func (o Options) WithEmitter(e Emitter) Options {
	o.Emitter = e
	return o
}

// WithLogger sets the logger.
func (o Options) WithLogger(logger *zap.Logger) Options {
	o.Logger = logger
	return o
}

// WithTracing sets the tracing bootstrap configuration.
func (o Options) WithTracing(cfg TracingConfig) Options {
	o.Tracing = &cfg
	return o
}
