package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zjrosen/pomo/internal/log"
)

// DefaultInterval is the time between ticks.
const DefaultInterval = time.Second

// Ticker produces a tick on the bus every interval until it is stopped.
//
// A stop signal is honored immediately, whether the ticker is waiting out the
// interval or waiting for room on the bus. While stopped the ticker blocks
// until resumed; there is no timeout. Close (or cancelling Run's context)
// terminates it permanently.
type Ticker struct {
	bus      *Bus
	time     TimeSource
	interval time.Duration

	stop   chan struct{} // capacity 1; a pending stop absorbs further stops
	resume chan struct{} // unbuffered; SignalResume blocks until received
	closed chan struct{}
	done   chan struct{}

	closeOnce sync.Once
	started   atomic.Bool
	paused    atomic.Bool
	ticks     atomic.Int64
}

// TickerOption configures a Ticker.
type TickerOption func(*Ticker)

// WithInterval overrides DefaultInterval.
func WithInterval(d time.Duration) TickerOption {
	return func(t *Ticker) {
		if d > 0 {
			t.interval = d
		}
	}
}

// WithTimeSource overrides the wall clock.
func WithTimeSource(ts TimeSource) TickerOption {
	return func(t *Ticker) {
		if ts != nil {
			t.time = ts
		}
	}
}

// NewTicker creates a ticker that emits onto bus. Call Run to start it.
func NewTicker(bus *Bus, opts ...TickerOption) *Ticker {
	t := &Ticker{
		bus:      bus,
		time:     RealTime{},
		interval: DefaultInterval,
		stop:     make(chan struct{}, 1),
		resume:   make(chan struct{}),
		closed:   make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Run produces ticks until ctx is done, the ticker is closed or the bus is
// closed. It must be called at most once.
func (t *Ticker) Run(ctx context.Context) error {
	if !t.started.CompareAndSwap(false, true) {
		return ErrClosed
	}
	defer close(t.done)

	log.Debug(log.CatSched, "Ticker started", "interval", t.interval)
	err := t.loop(ctx)
	log.Debug(log.CatSched, "Ticker terminated", "ticks", t.ticks.Load(), "reason", err)
	return err
}

func (t *Ticker) loop(ctx context.Context) error {
	for {
		wait := t.time.After(t.interval)

		var now time.Time
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.closed:
			return ErrClosed
		case <-t.stop:
			if err := t.awaitResume(ctx); err != nil {
				return err
			}
			continue
		case now = <-wait:
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.closed:
			return ErrClosed
		case <-t.bus.Done():
			return ErrClosed
		case <-t.stop:
			// The tick in hand is dropped; the controller is stopped anyway.
			if err := t.awaitResume(ctx); err != nil {
				return err
			}
		case t.bus.events <- Tick(now):
			t.ticks.Add(1)
		}
	}
}

func (t *Ticker) awaitResume(ctx context.Context) error {
	t.paused.Store(true)
	defer t.paused.Store(false)

	log.Debug(log.CatSched, "Ticker suspended")
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.closed:
		return ErrClosed
	case <-t.resume:
		log.Debug(log.CatSched, "Ticker resumed")
		return nil
	}
}

// SignalStop asks the ticker to suspend. It never blocks: if a stop is
// already pending the call is a no-op.
func (t *Ticker) SignalStop() error {
	select {
	case <-t.closed:
		return ErrClosed
	case <-t.done:
		return ErrClosed
	default:
	}

	select {
	case t.stop <- struct{}{}:
	default:
	}
	return nil
}

// SignalResume wakes a suspended ticker. It blocks until the ticker has
// received the signal, and returns ErrClosed if the ticker has terminated.
func (t *Ticker) SignalResume(ctx context.Context) error {
	select {
	case t.resume <- struct{}{}:
		return nil
	case <-t.closed:
		return ErrClosed
	case <-t.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close terminates the ticker permanently. Safe to call more than once.
func (t *Ticker) Close() {
	t.closeOnce.Do(func() { close(t.closed) })
}

// Done is closed when Run has returned.
func (t *Ticker) Done() <-chan struct{} {
	return t.done
}

// Paused reports whether the ticker is waiting for a resume signal.
func (t *Ticker) Paused() bool {
	return t.paused.Load()
}

// Ticks returns the number of ticks delivered to the bus.
func (t *Ticker) Ticks() int64 {
	return t.ticks.Load()
}
