package notify

import (
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/wehubfusion/Daedalus/pkg/processor"
)

// Publisher is the subset of a NATS connection the emitter needs. *nats.Conn
// satisfies it; tests substitute a fake.
type Publisher interface {
	Publish(subject string, data []byte) error
}

var _ Publisher = (*nats.Conn)(nil)

// NATSEmitter publishes lifecycle events as JSON on
// "<prefix>.started|progress|partial|completed|aborted" subjects. Publish
// failures are logged and otherwise ignored: the notification feed is
// best-effort and must never fail the job.
type NATSEmitter struct {
	conn   Publisher
	prefix string
	logger *zap.Logger
}

// NewNATSEmitter creates an emitter publishing on the given subject prefix,
// e.g. "daedalus.jobs".
func NewNATSEmitter(conn Publisher, prefix string, logger *zap.Logger) *NATSEmitter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NATSEmitter{conn: conn, prefix: prefix, logger: logger}
}

func (e *NATSEmitter) publish(ev Event) {
	ev.Timestamp = time.Now()
	subject := e.prefix + "." + string(ev.Type)

	data, err := json.Marshal(ev)
	if err != nil {
		e.logger.Warn("failed to encode lifecycle event",
			zap.String("subject", subject),
			zap.Error(err))
		return
	}

	if err := e.conn.Publish(subject, data); err != nil {
		e.logger.Warn("failed to publish lifecycle event",
			zap.String("subject", subject),
			zap.Error(err))
	}
}

func (e *NATSEmitter) JobStarted(job processor.JobInfo) {
	e.publish(Event{Type: EventStarted, JobID: job.ID})
}

func (e *NATSEmitter) Progress(job processor.JobInfo, state processor.State) {
	e.publish(Event{Type: EventProgress, JobID: job.ID, State: &state})
}

func (e *NATSEmitter) PartialResults(job processor.JobInfo, results []processor.Result) {
	e.publish(Event{Type: EventPartial, JobID: job.ID, Results: results})
}

func (e *NATSEmitter) JobCompleted(job processor.JobInfo, state processor.State) {
	e.publish(Event{Type: EventCompleted, JobID: job.ID, State: &state})
}

func (e *NATSEmitter) JobAborted(job processor.JobInfo, state processor.State) {
	e.publish(Event{Type: EventAborted, JobID: job.ID, State: &state})
}

var _ processor.Emitter = (*NATSEmitter)(nil)
