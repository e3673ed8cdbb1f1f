// Package progress provides the one-way message relay between a running
// batch pipeline and an interactive front end.
//
// The pipeline appends events as it works; a front end polls Drain on a
// fixed interval from a single consumer goroutine. The queue is strictly
// ordered and safe for multiple producers. It is a log relay, not a
// control channel: nothing flows back through it.
package progress

import (
	"sync"
	"time"
)

// Stage identifies the pipeline step an event refers to.
type Stage string

const (
	StageDiscover  Stage = "discover"
	StageReconcile Stage = "reconcile"
	StageAggregate Stage = "aggregate"
	StageMerge     Stage = "merge"
	StagePersist   Stage = "persist"
	StageSummary   Stage = "summary"
)

// Event is one progress message.
type Event struct {
	Time    time.Time
	Stage   Stage
	File    string // base name of the input file, empty for run-level events
	Index   int    // 1-based position within the run, 0 for run-level events
	Total   int    // files in the run, 0 for run-level events
	Err     error  // non-nil when the step failed
	Message string
}

// Queue is an append-only, ordered, multi-producer/single-consumer event
// queue.
type Queue struct {
	mu     sync.Mutex
	events []Event
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Publish appends an event. The event time is set when zero.
func (q *Queue) Publish(ev Event) {
	if ev.Time.IsZero() {
		ev.Time = time.Now()
	}
	q.mu.Lock()
	q.events = append(q.events, ev)
	q.mu.Unlock()
}

// Drain removes and returns all queued events in publish order.
// It returns nil when the queue is empty.
func (q *Queue) Drain() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.events) == 0 {
		return nil
	}
	out := q.events
	q.events = nil
	return out
}

// Len returns the number of queued events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}
