// Package history implements the append-only event log, the initial
// snapshot taken at createGame, and the undo/replay mechanism built on
// top of them (§4.10).
package history

import (
	"github.com/jruiznavarro/skirmishengine/internal/engine/core"
	"github.com/jruiznavarro/skirmishengine/internal/engine/event"
)

// Log is the ordered, append-only record of every successfully applied
// event plus the snapshot taken at game creation. Undo never mutates
// entries in place: it restores the snapshot and replays a prefix.
type Log struct {
	Seed    int64
	Initial core.GameState
	Events  []event.Event

	nextID int64
}

// New starts a fresh Log from the state captured immediately after
// createGame, before any event has been applied.
func New(seed int64, initial core.GameState) *Log {
	return &Log{Seed: seed, Initial: initial, nextID: 1}
}

// Append records a successfully applied event and assigns it the next
// monotonic id.
func (l *Log) Append(e event.Event) event.Event {
	e.ID = l.nextID
	l.nextID++
	l.Events = append(l.Events, e)
	return e
}

// All returns every applied event in append order.
func (l *Log) All() []event.Event {
	return l.Events
}

// IndexOfEvent returns the slice index of the event with the given id, or
// -1 if not found.
func (l *Log) IndexOfEvent(id int64) int {
	for i, e := range l.Events {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// TruncateAfter drops every event after index i (inclusive bound: events
// [0, i] survive) and resets the id counter so subsequent Appends continue
// from the right place.
func (l *Log) TruncateAfter(i int) {
	l.Events = l.Events[:i+1]
	if len(l.Events) == 0 {
		l.nextID = 1
		return
	}
	l.nextID = l.Events[len(l.Events)-1].ID + 1
}

// Reset drops every event, returning the log to its just-created state.
func (l *Log) Reset() {
	l.Events = nil
	l.nextID = 1
}
