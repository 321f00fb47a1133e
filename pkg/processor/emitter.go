package processor

// Emitter receives lifecycle notifications from a running job. Methods are
// called synchronously on the controller goroutine, in a fixed order: one
// JobStarted, then per batch a Progress (and, when partial results are
// enabled, a PartialResults), then exactly one of JobCompleted or JobAborted.
//
// Implementations must not block for long; a slow emitter stalls the job.
type Emitter interface {
	// JobStarted fires once, after options are validated and work items exist.
	JobStarted(job JobInfo)
	// Progress fires after every completed batch with the updated state.
	Progress(job JobInfo, state State)
	// PartialResults fires after every completed batch with just that batch's
	// results, only when partial results are enabled.
	PartialResults(job JobInfo, results []Result)
	// JobCompleted fires after the last batch on natural completion.
	JobCompleted(job JobInfo, state State)
	// JobAborted fires when a cancellation request is observed at a batch
	// boundary, with the state accumulated so far.
	JobAborted(job JobInfo, state State)
}

// NoOpEmitter is an emitter that does nothing. Used when no emitter is
// configured.
type NoOpEmitter struct{}

func (NoOpEmitter) JobStarted(JobInfo) {}

func (NoOpEmitter) Progress(JobInfo, State) {}

func (NoOpEmitter) PartialResults(JobInfo, []Result) {}

func (NoOpEmitter) JobCompleted(JobInfo, State) {}

func (NoOpEmitter) JobAborted(JobInfo, State) {}

var _ Emitter = NoOpEmitter{}
