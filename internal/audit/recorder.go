package audit

import (
	"time"

	"github.com/google/uuid"
)

// Recorder decouples the lookup hot path from audit persistence. Record is
// non-blocking: when the inbox is full the event is dropped rather than
// stalling a query on a slow sink.
type Recorder struct {
	inbox chan Event
}

// NewRecorder creates a recorder with the given inbox capacity.
func NewRecorder(buffer int) *Recorder {
	if buffer <= 0 {
		buffer = 256
	}
	return &Recorder{inbox: make(chan Event, buffer)}
}

// Record stamps and enqueues an event. Returns false if the inbox was full
// and the event was dropped.
func (r *Recorder) Record(event Event) bool {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	select {
	case r.inbox <- event:
		return true
	default:
		return false
	}
}

// Events exposes the inbox for the worker.
func (r *Recorder) Events() <-chan Event {
	return r.inbox
}
