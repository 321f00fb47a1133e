// Package notify provides ready-made lifecycle event emitters for the
// processor: a channel feed for in-process UI collaborators and a NATS
// publisher for out-of-process ones.
package notify

import (
	"time"

	"github.com/wehubfusion/Daedalus/pkg/processor"
)

// EventType names a lifecycle notification.
type EventType string

const (
	EventStarted   EventType = "started"
	EventProgress  EventType = "progress"
	EventPartial   EventType = "partial"
	EventCompleted EventType = "completed"
	EventAborted   EventType = "aborted"
)

// Event is one lifecycle notification in a serializable form.
type Event struct {
	Type      EventType          `json:"type"`
	JobID     string             `json:"jobId"`
	State     *processor.State   `json:"state,omitempty"`
	Results   []processor.Result `json:"results,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
}

// ChannelEmitter exposes lifecycle events as a channel feed. Events are
// dropped rather than blocking the controller when the buffer is full, so a
// slow reader degrades the feed, never the job.
type ChannelEmitter struct {
	events chan Event
}

// NewChannelEmitter creates a channel emitter with the given buffer size.
func NewChannelEmitter(buffer int) *ChannelEmitter {
	if buffer <= 0 {
		buffer = 64
	}
	return &ChannelEmitter{events: make(chan Event, buffer)}
}

// Events returns the event feed.
func (e *ChannelEmitter) Events() <-chan Event {
	return e.events
}

// Close closes the event feed. Call only after the job has returned.
func (e *ChannelEmitter) Close() {
	close(e.events)
}

func (e *ChannelEmitter) send(ev Event) {
	ev.Timestamp = time.Now()
	select {
	case e.events <- ev:
	default:
	}
}

func (e *ChannelEmitter) JobStarted(job processor.JobInfo) {
	e.send(Event{Type: EventStarted, JobID: job.ID})
}

func (e *ChannelEmitter) Progress(job processor.JobInfo, state processor.State) {
	e.send(Event{Type: EventProgress, JobID: job.ID, State: &state})
}

func (e *ChannelEmitter) PartialResults(job processor.JobInfo, results []processor.Result) {
	e.send(Event{Type: EventPartial, JobID: job.ID, Results: results})
}

func (e *ChannelEmitter) JobCompleted(job processor.JobInfo, state processor.State) {
	e.send(Event{Type: EventCompleted, JobID: job.ID, State: &state})
}

func (e *ChannelEmitter) JobAborted(job processor.JobInfo, state processor.State) {
	e.send(Event{Type: EventAborted, JobID: job.ID, State: &state})
}

var _ processor.Emitter = (*ChannelEmitter)(nil)
