package processor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/wehubfusion/Daedalus/pkg/batch"
	"github.com/wehubfusion/Daedalus/pkg/concurrency"
	"github.com/wehubfusion/Daedalus/pkg/errors"
	"github.com/wehubfusion/Daedalus/pkg/flatten"
	"github.com/wehubfusion/Daedalus/pkg/transform"
)

// poolFactory creates the worker pool for a job. It is a field on Processor so
// tests can exercise the startup-failure fallback.
type poolFactory func(workers int, limiter *concurrency.Limiter, fn transform.Func, logger *zap.Logger) (*pool, error)

// Processor drives jobs over parsed JSON trees: flatten, batch, execute,
// report. It runs one job at a time; ProcessData and ProcessStream block until
// the job completes or aborts and return the ordered result list.
type Processor struct {
	opts            Options
	logger          *zap.Logger
	emitter         Emitter
	tracer          trace.Tracer
	pools           poolFactory
	tracingShutdown func(context.Context) error

	running   atomic.Bool
	cancelled atomic.Bool

	mu    sync.RWMutex
	state State
}

// New creates a processor with the given options. Invalid options fail here,
// before any job runs. If a tracing configuration is provided, OpenTelemetry
// export is set up now and torn down by Close.
func New(opts Options) (*Processor, error) {
	validated, err := opts.validate()
	if err != nil {
		return nil, err
	}

	p := &Processor{
		opts:    validated,
		logger:  validated.Logger,
		emitter: validated.Emitter,
		tracer:  otel.Tracer("daedalus/processor"),
		pools:   newPool,
	}

	if validated.Tracing != nil {
		shutdown, err := setupTracing(context.Background(), *validated.Tracing, p.logger)
		if err != nil {
			p.logger.Warn("failed to set up tracing, continuing without tracing", zap.Error(err))
		} else {
			p.tracingShutdown = shutdown
		}
	}

	return p, nil
}

// Close releases resources held by the processor; currently that is only the
// tracing exporter, when one was configured.
func (p *Processor) Close(ctx context.Context) error {
	if p.tracingShutdown == nil {
		return nil
	}
	return p.tracingShutdown(ctx)
}

// Abort requests cooperative cancellation of the in-flight job. It only sets
// a flag; the job stops at the next batch boundary, so in-flight batch work
// finishes rather than being killed. Callable from any goroutine at any time.
func (p *Processor) Abort() {
	p.cancelled.Store(true)
}

// State returns a snapshot of the current job state. It is safe to call at
// any time: before the first job it is the zero state, after natural
// completion Progress is 100.
func (p *Processor) State() State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	st := p.state
	if len(p.state.Errors) > 0 {
		st.Errors = make([]ItemError, len(p.state.Errors))
		copy(st.Errors, p.state.Errors)
	}
	return st
}

func (p *Processor) setState(st State) {
	p.mu.Lock()
	p.state = st
	p.mu.Unlock()
}

// ProcessData flattens root, processes it in ordered batches and returns one
// result per attempted work item, in work-item index order. On abort it
// returns the results of fully completed batches with a nil error; only
// invalid options fail the call.
func (p *Processor) ProcessData(ctx context.Context, root interface{}) ([]Result, error) {
	return p.run(ctx, root)
}

// ProcessStream reads r to completion, decodes it as JSON and delegates to the
// same pipeline as ProcessData. An empty stream or malformed content fails the
// whole call before any work item is produced and before any notification
// fires.
func (p *Processor) ProcessStream(ctx context.Context, r io.Reader) ([]Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.NewProcessingError(-1, "read", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.NewProcessingError(-1, "decode", errors.ErrEmptyStream)
	}

	var root interface{}
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, errors.NewProcessingError(-1, "decode", fmt.Errorf("%w: %v", errors.ErrDecodeFailed, err))
	}

	return p.run(ctx, root)
}

func (p *Processor) run(ctx context.Context, root interface{}) ([]Result, error) {
	if !p.running.CompareAndSwap(false, true) {
		return nil, errors.ErrJobRunning
	}
	defer p.running.Store(false)
	p.cancelled.Store(false)

	items := flatten.Flatten(root, !p.opts.ShallowProcessing)
	batches, err := batch.Split(items, p.opts.BatchSize)
	if err != nil {
		return nil, errors.NewProcessingError(-1, "batch", err)
	}

	job := JobInfo{
		ID:           uuid.NewString(),
		Total:        len(items),
		TotalBatches: len(batches),
	}

	ctx, span := p.tracer.Start(ctx, "processor.run", trace.WithAttributes(
		attribute.String("job.id", job.ID),
		attribute.Int("job.items", job.Total),
		attribute.Int("job.batches", job.TotalBatches),
		attribute.Bool("job.worker_pool", p.opts.UseWorkerPool),
	))
	defer span.End()

	// Pool startup failure falls back to sequential execution. The fallback is
	// silent to the caller's result contract but visible in logs.
	var wp *pool
	if p.opts.UseWorkerPool {
		limiter := concurrency.NewLimiter(concurrency.LoadConfig().MaxConcurrent)
		wp, err = p.pools(p.opts.MaxWorkers, limiter, p.opts.Transform, p.logger)
		if err != nil {
			p.logger.Warn("worker pool unavailable, falling back to sequential execution",
				zap.String("job_id", job.ID),
				zap.Error(err))
			wp = nil
		}
	}

	t := newTracker(job.Total, job.TotalBatches)
	p.setState(t.snapshot())

	p.emitter.JobStarted(job)
	p.logger.Info("job started",
		zap.String("job_id", job.ID),
		zap.Int("items", job.Total),
		zap.Int("batches", job.TotalBatches))

	results := make([]Result, 0, len(items))
	for i, b := range batches {
		// Cancellation checkpoint: once per batch boundary, never mid-item.
		if p.cancelled.Load() || ctx.Err() != nil {
			st := t.snapshot()
			p.setState(st)
			p.emitter.JobAborted(job, st)
			p.logger.Info("job aborted",
				zap.String("job_id", job.ID),
				zap.Int("processed", st.Processed),
				zap.Int("current_batch", st.CurrentBatch))
			span.SetAttributes(attribute.Bool("job.aborted", true))
			return results, nil
		}

		batchResults := p.runBatch(ctx, wp, b, i, job)
		results = append(results, batchResults...)

		st := t.update(batchResults, i)
		p.setState(st)
		p.emitter.Progress(job, st)
		if p.opts.PartialResults {
			p.emitter.PartialResults(job, batchResults)
		}

		if p.opts.BatchDelay > 0 && i < len(batches)-1 {
			timer := time.NewTimer(p.opts.BatchDelay)
			select {
			case <-ctx.Done():
				timer.Stop()
			case <-timer.C:
			}
		}
	}

	st := t.snapshot()
	p.setState(st)
	p.emitter.JobCompleted(job, st)
	p.logger.Info("job completed",
		zap.String("job_id", job.ID),
		zap.Int("processed", st.Processed),
		zap.Int("failed", len(st.Errors)))
	return results, nil
}

func (p *Processor) runBatch(ctx context.Context, wp *pool, items []flatten.WorkItem, batchIndex int, job JobInfo) []Result {
	ctx, span := p.tracer.Start(ctx, "processor.batch", trace.WithAttributes(
		attribute.String("job.id", job.ID),
		attribute.Int("batch.index", batchIndex),
		attribute.Int("batch.size", len(items)),
	))
	defer span.End()

	if wp != nil {
		return wp.runBatch(ctx, items)
	}
	return executeSequential(items, p.opts.Transform)
}
