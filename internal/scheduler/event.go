// Package scheduler wires the timer's concurrent activities together: a
// one-second ticker and a keyboard producer feed a single ordered event bus,
// and one consumer loop applies each event and redraws.
package scheduler

import (
	"errors"
	"fmt"
	"time"
)

// ErrClosed is returned when the peer of a channel has gone away: the bus was
// closed, the ticker terminated, or the keyboard stopped forwarding.
var ErrClosed = errors.New("scheduler: closed")

// EventKind distinguishes the events on the bus.
type EventKind int

const (
	EventTick      EventKind = iota // one second elapsed
	EventKey                        // a character key was pressed
	EventInterrupt                  // Ctrl+C
)

func (k EventKind) String() string {
	switch k {
	case EventTick:
		return "tick"
	case EventKey:
		return "key"
	case EventInterrupt:
		return "interrupt"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

// Event is a single item on the bus. Key is only set for EventKey.
type Event struct {
	Kind EventKind
	Key  rune
	At   time.Time
}

// Tick returns a tick event stamped at.
func Tick(at time.Time) Event {
	return Event{Kind: EventTick, At: at}
}

// KeyPress returns a key event for r.
func KeyPress(r rune) Event {
	return Event{Kind: EventKey, Key: r, At: time.Now()}
}

// Interrupt returns an interrupt event.
func Interrupt() Event {
	return Event{Kind: EventInterrupt, At: time.Now()}
}

func (e Event) String() string {
	if e.Kind == EventKey {
		return fmt.Sprintf("key(%q)", e.Key)
	}
	return e.Kind.String()
}

// Outcome tells the loop whether to keep running after an event.
type Outcome int

const (
	Continue Outcome = iota
	Quit
)
