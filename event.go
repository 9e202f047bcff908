package onesig

import (
	"context"
	"sync"
)

// Event is an externally observable fact emitted by a handler. Events are
// fire-and-forget, nothing in the state machine reads them back.
type Event interface {
	// EventKind is a short stable name, for example "executed".
	EventKind() string
}

// EventLog is an append-only collector of events.
type EventLog struct {
	mu     sync.Mutex
	events []Event
}

// Emit appends events to the log.
func (l *EventLog) Emit(events ...Event) {
	l.mu.Lock()
	l.events = append(l.events, events...)
	l.mu.Unlock()
}

// Events returns a copy of all events emitted so far.
func (l *EventLog) Events() []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	res := make([]Event, len(l.events))
	copy(res, l.events)
	return res
}

// EventSink is where committed events are delivered.
type EventSink interface {
	Emit(events ...Event)
}

// Commit delivers the events of a successful result to the sink. Results
// of failed transactions must never be committed.
func Commit(ctx context.Context, sink EventSink, res *DeliverResult) {
	if res == nil || len(res.Events) == 0 {
		return
	}
	for _, e := range res.Events {
		GetLogger(ctx).Debug("event", "kind", e.EventKind())
	}
	sink.Emit(res.Events...)
}
