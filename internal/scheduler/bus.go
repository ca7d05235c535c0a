package scheduler

import (
	"context"
	"sync"
)

// DefaultBusSize is the event queue capacity used by NewBus.
const DefaultBusSize = 64

// Bus is the single ordered queue between producers and the consumer loop.
// Events from one producer arrive in emission order; events from different
// producers interleave in arrival order.
//
// Close only closes an internal done channel. The data channel is never
// closed, so a producer racing Close gets ErrClosed instead of a panic.
type Bus struct {
	events    chan Event
	done      chan struct{}
	closeOnce sync.Once
}

// NewBus creates a bus with DefaultBusSize capacity.
func NewBus() *Bus {
	return NewBusWithSize(DefaultBusSize)
}

// NewBusWithSize creates a bus with the given capacity (0 means unbuffered).
func NewBusWithSize(size int) *Bus {
	if size < 0 {
		size = 0
	}
	return &Bus{
		events: make(chan Event, size),
		done:   make(chan struct{}),
	}
}

// Emit queues ev, blocking until there is room, ctx is done or the bus is
// closed.
func (b *Bus) Emit(ctx context.Context, ev Event) error {
	select {
	case <-b.done:
		return ErrClosed
	default:
	}

	select {
	case b.events <- ev:
		return nil
	case <-b.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Next blocks for the next event. It returns ErrClosed once the bus is
// closed, or ctx's error.
func (b *Bus) Next(ctx context.Context) (Event, error) {
	select {
	case ev := <-b.events:
		return ev, nil
	case <-b.done:
		return Event{}, ErrClosed
	case <-ctx.Done():
		return Event{}, ctx.Err()
	}
}

// Done is closed when the bus is closed.
func (b *Bus) Done() <-chan struct{} {
	return b.done
}

// Close shuts the bus. Safe to call more than once.
func (b *Bus) Close() {
	b.closeOnce.Do(func() { close(b.done) })
}

// Len returns the number of queued events.
func (b *Bus) Len() int {
	return len(b.events)
}
