package processor

import (
	"math"
	"time"
)

// tracker maintains a job's cumulative counters. It is owned exclusively by
// the controller goroutine; subscribers only ever see snapshot copies.
type tracker struct {
	total        int
	totalBatches int
	start        time.Time
	state        State
}

func newTracker(total, totalBatches int) *tracker {
	st := State{
		Total:        total,
		TotalBatches: totalBatches,
	}
	if total == 0 {
		st.Progress = 100
	}
	return &tracker{
		total:        total,
		totalBatches: totalBatches,
		start:        time.Now(),
		state:        st,
	}
}

// update folds one completed batch into the state and returns a snapshot.
func (t *tracker) update(results []Result, batchIndex int) State {
	t.state.Processed += len(results)

	if t.total == 0 {
		t.state.Progress = 100
	} else {
		t.state.Progress = int(math.Round(100 * float64(t.state.Processed) / float64(t.total)))
	}

	elapsed := time.Since(t.start).Seconds()
	if elapsed > 0 {
		t.state.Speed = float64(t.state.Processed) / elapsed
	}
	if t.state.Speed > 0 {
		remaining := float64(t.total-t.state.Processed) / t.state.Speed
		t.state.EstimatedRemaining = time.Duration(remaining * float64(time.Second))
	}

	for _, r := range results {
		if !r.Success {
			t.state.Errors = append(t.state.Errors, ItemError{Index: r.Index, Message: r.Error})
		}
	}

	t.state.CurrentBatch = batchIndex + 1
	return t.snapshot()
}

// snapshot returns a copy safe to hand to subscribers; the errors slice is
// cloned so later updates cannot show through.
func (t *tracker) snapshot() State {
	st := t.state
	if len(t.state.Errors) > 0 {
		st.Errors = make([]ItemError, len(t.state.Errors))
		copy(st.Errors, t.state.Errors)
	}
	return st
}
