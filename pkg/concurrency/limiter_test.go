package concurrency

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestLimiter_AcquireRelease(t *testing.T) {
	limiter := NewLimiter(2)

	if err := limiter.Acquire(context.Background()); err != nil {
		t.Fatalf("first acquire failed: %v", err)
	}
	if err := limiter.Acquire(context.Background()); err != nil {
		t.Fatalf("second acquire failed: %v", err)
	}
	if active := limiter.CurrentActive(); active != 2 {
		t.Fatalf("expected 2 active, got %d", active)
	}

	limiter.Release()
	limiter.Release()
	if active := limiter.CurrentActive(); active != 0 {
		t.Fatalf("expected 0 active after release, got %d", active)
	}
}

func TestLimiter_AcquireBlocksUntilRelease(t *testing.T) {
	limiter := NewLimiter(1)
	if err := limiter.Acquire(context.Background()); err != nil {
		t.Fatalf("acquire failed: %v", err)
	}

	acquired := make(chan struct{})
	go func() {
		if err := limiter.Acquire(context.Background()); err == nil {
			close(acquired)
		}
	}()

	select {
	case <-acquired:
		t.Fatal("acquire succeeded while limiter was saturated")
	case <-time.After(50 * time.Millisecond):
	}

	limiter.Release()

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("acquire did not proceed after release")
	}
}

func TestLimiter_AcquireHonorsContext(t *testing.T) {
	limiter := NewLimiter(1)
	if err := limiter.Acquire(context.Background()); err != nil {
		t.Fatalf("acquire failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := limiter.Acquire(ctx); err == nil {
		t.Fatal("expected context error from saturated limiter")
	}
}

func TestLimiter_BoundsConcurrency(t *testing.T) {
	limiter := NewLimiter(3)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := limiter.Acquire(context.Background()); err != nil {
				t.Errorf("acquire failed: %v", err)
				return
			}
			time.Sleep(time.Millisecond)
			limiter.Release()
		}()
	}
	wg.Wait()

	metrics := limiter.GetMetrics()
	if metrics.PeakConcurrent > 3 {
		t.Fatalf("peak concurrency %d exceeded limit 3", metrics.PeakConcurrent)
	}
	if metrics.TotalAcquired != 20 || metrics.TotalReleased != 20 {
		t.Fatalf("expected 20 acquired/released, got %d/%d", metrics.TotalAcquired, metrics.TotalReleased)
	}
}

func TestLimiter_Reset(t *testing.T) {
	limiter := NewLimiter(1)
	_ = limiter.Acquire(context.Background())
	limiter.Release()

	limiter.Reset()
	metrics := limiter.GetMetrics()
	if metrics.TotalAcquired != 0 || metrics.TotalReleased != 0 {
		t.Fatalf("expected zeroed metrics after reset, got %+v", &metrics)
	}
}
