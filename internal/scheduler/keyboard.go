package scheduler

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/zjrosen/pomo/internal/log"
)

// KeyKind classifies a key press coming from the terminal.
type KeyKind int

const (
	KeyRune      KeyKind = iota // a printable character
	KeyInterrupt                // Ctrl+C
	KeyOther                    // arrows, function keys, modifiers...
)

// Key is a key press as reported by the terminal collaborator.
type Key struct {
	Kind KeyKind
	Rune rune
}

// Keyboard turns key presses into bus events. Press must be called from a
// single goroutine (the terminal's input reader) so presses keep their order.
type Keyboard struct {
	bus    *Bus
	time   TimeSource
	closed atomic.Bool
}

// KeyboardOption configures a Keyboard.
type KeyboardOption func(*Keyboard)

// WithKeyTimeSource stamps key events from ts instead of the wall clock.
func WithKeyTimeSource(ts TimeSource) KeyboardOption {
	return func(k *Keyboard) {
		if ts != nil {
			k.time = ts
		}
	}
}

// NewKeyboard creates a keyboard producer for bus.
func NewKeyboard(bus *Bus, opts ...KeyboardOption) *Keyboard {
	k := &Keyboard{bus: bus, time: RealTime{}}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

// Press forwards key to the bus. Character keys become EventKey, Ctrl+C
// becomes EventInterrupt and anything else is dropped. Once a send fails the
// keyboard stops forwarding and every later call returns ErrClosed.
func (k *Keyboard) Press(ctx context.Context, key Key) error {
	if k.closed.Load() {
		return ErrClosed
	}

	var ev Event
	switch key.Kind {
	case KeyRune:
		ev = Event{Kind: EventKey, Key: key.Rune}
	case KeyInterrupt:
		ev = Event{Kind: EventInterrupt}
	default:
		return nil
	}
	ev.At = k.time.Now()

	if err := k.bus.Emit(ctx, ev); err != nil {
		k.closed.Store(true)
		log.ErrorErr(log.CatInput, "Keyboard stopped forwarding", err, "event", ev)
		return fmt.Errorf("forwarding %s: %w", ev, err)
	}
	log.Debug(log.CatInput, "Key forwarded", "event", ev)
	return nil
}

// Close stops forwarding.
func (k *Keyboard) Close() {
	k.closed.Store(true)
}

// Closed reports whether the keyboard has stopped forwarding.
func (k *Keyboard) Closed() bool {
	return k.closed.Load()
}
