// Package sound turns session events into audio. The session only knows the
// Sink interface; whether anything is heard is up to the front end.
package sound

import "sync"

// Event is a discrete notification emitted by a session.
type Event int

const (
	EventMoved Event = iota
	EventItemCollected
	EventDroneDestroyed
	EventGameOver
	EventVictory
	EventFired
	EventDroneHit
)

// String returns the event name.
func (e Event) String() string {
	switch e {
	case EventMoved:
		return "moved"
	case EventItemCollected:
		return "itemCollected"
	case EventDroneDestroyed:
		return "droneDestroyed"
	case EventGameOver:
		return "gameOver"
	case EventVictory:
		return "victory"
	case EventFired:
		return "fired"
	case EventDroneHit:
		return "droneHit"
	default:
		return "unknown"
	}
}

// Sink receives session events. Notify must not block.
type Sink interface {
	Notify(Event)
}

// Silent discards every event.
type Silent struct{}

// Notify does nothing.
func (Silent) Notify(Event) {}

// Recorder keeps every event it receives, in order.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Notify appends the event.
func (r *Recorder) Notify(e Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Count returns how many times e was recorded.
func (r *Recorder) Count(e Event) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, x := range r.events {
		if x == e {
			n++
		}
	}
	return n
}

// Reset drops all recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}

type tee []Sink

func (t tee) Notify(e Event) {
	for _, s := range t {
		s.Notify(e)
	}
}

// Tee fans events out to every non-nil sink.
func Tee(sinks ...Sink) Sink {
	out := make(tee, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}
