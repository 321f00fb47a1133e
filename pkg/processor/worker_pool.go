package processor

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/wehubfusion/Daedalus/pkg/concurrency"
	"github.com/wehubfusion/Daedalus/pkg/errors"
	"github.com/wehubfusion/Daedalus/pkg/flatten"
	"github.com/wehubfusion/Daedalus/pkg/transform"
)

// pool fans the items of one batch out to a bounded set of goroutines.
// Batches themselves are never concurrent with each other: the controller
// waits for runBatch to return before starting the next one, which keeps
// ordered assembly and monotonic progress trivial.
type pool struct {
	workers int
	limiter *concurrency.Limiter
	fn      transform.Func
	logger  *zap.Logger

	processed atomic.Int64
	failed    atomic.Int64
}

// newPool creates a worker pool. Startup failure is a typed error so the
// controller's sequential fallback is an explicit branch, not a caught panic.
func newPool(workers int, limiter *concurrency.Limiter, fn transform.Func, logger *zap.Logger) (*pool, error) {
	if workers <= 0 {
		return nil, fmt.Errorf("%w: worker count must be positive, got %d", errors.ErrPoolStartup, workers)
	}
	if fn == nil {
		return nil, fmt.Errorf("%w: no transform to run", errors.ErrPoolStartup)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &pool{
		workers: workers,
		limiter: limiter,
		fn:      fn,
		logger:  logger,
	}, nil
}

// runBatch executes one batch across the workers and returns its results in
// item order. Execution order across workers is unconstrained; every result is
// tagged with its item index and reassembled before returning. Work items
// carry contiguous indices within a batch, so reassembly is a direct offset.
//
// The batch always runs to completion: cancellation is observed by the
// controller at batch boundaries, never mid-item. Limiter acquisition ignores
// the job context for the same reason; items already handed to the batch
// finish even when the context is cancelled mid-batch.
func (wp *pool) runBatch(ctx context.Context, items []flatten.WorkItem) []Result {
	if len(items) == 0 {
		return nil
	}

	jobs := make(chan flatten.WorkItem)
	resultCh := make(chan Result, len(items))

	workers := wp.workers
	if workers > len(items) {
		workers = len(items)
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go wp.worker(i, jobs, resultCh, &wg)
	}

	for _, item := range items {
		jobs <- item
	}
	close(jobs)
	wg.Wait()
	close(resultCh)

	base := items[0].Index
	ordered := make([]Result, len(items))
	for r := range resultCh {
		ordered[r.Index-base] = r
	}
	return ordered
}

func (wp *pool) worker(id int, jobs <-chan flatten.WorkItem, results chan<- Result, wg *sync.WaitGroup) {
	defer wg.Done()

	wp.logger.Debug("worker started", zap.Int("worker_id", id))

	for item := range jobs {
		if wp.limiter != nil {
			if err := wp.limiter.Acquire(context.Background()); err != nil {
				wp.failed.Add(1)
				results <- Result{Index: item.Index, Success: false, Error: err.Error()}
				continue
			}
		}

		r := executeItem(item, wp.fn)

		if wp.limiter != nil {
			wp.limiter.Release()
		}

		if r.Success {
			wp.processed.Add(1)
		} else {
			wp.failed.Add(1)
		}
		results <- r
	}
}

// Stats returns the cumulative processed and failed item counts across all
// batches this pool has run.
func (wp *pool) Stats() (processed, failed int64) {
	return wp.processed.Load(), wp.failed.Load()
}
