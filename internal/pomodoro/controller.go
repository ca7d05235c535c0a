// Package pomodoro implements the timer controller: the Running/Stopped state
// machine that turns ticks and key presses into clock changes and ticker
// signals.
package pomodoro

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/pomo/internal/action"
	"github.com/zjrosen/pomo/internal/clock"
	"github.com/zjrosen/pomo/internal/log"
	"github.com/zjrosen/pomo/internal/scheduler"
	"github.com/zjrosen/pomo/internal/tracing"
)

// State is the controller's run mode.
type State int

const (
	Running State = iota
	Stopped
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Signaler suspends and resumes the tick producer.
// *scheduler.Ticker satisfies it.
type Signaler interface {
	// SignalStop must not block. A stop that is already pending absorbs it.
	SignalStop() error
	// SignalResume blocks until the producer has resumed.
	SignalResume(ctx context.Context) error
}

// Controller owns the clock. Handle is not safe for concurrent use; only the
// scheduler loop calls it.
type Controller struct {
	clock     *clock.Clock
	registry  *action.Registry
	signals   Signaler
	direction clock.Direction
	state     State
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock replaces the default clock for the direction.
func WithClock(c *clock.Clock) Option {
	return func(ctl *Controller) {
		if c != nil {
			ctl.clock = c
		}
	}
}

// New creates a running controller counting in direction dir.
func New(reg *action.Registry, sig Signaler, dir clock.Direction, opts ...Option) *Controller {
	c := &Controller{
		clock:     clock.ForDirection(dir),
		registry:  reg,
		signals:   sig,
		direction: dir,
		state:     Running,
	}
	for _, opt := range opts {
		opt(c)
	}
	log.Info(log.CatTimer, "Controller created",
		"clock", c.clock.ID(), "direction", dir, "start", c.clock)
	return c
}

// Handle applies one event. It returns scheduler.Quit for the quit action and
// for an interrupt. Errors come only from a ticker that has gone away; the
// state is left unchanged when that happens.
func (c *Controller) Handle(ctx context.Context, ev scheduler.Event) (scheduler.Outcome, error) {
	span := trace.SpanFromContext(ctx)
	defer func() {
		span.SetAttributes(
			attribute.String(tracing.AttrTimerState, c.state.String()),
			attribute.String(tracing.AttrClockValue, c.clock.String()),
			attribute.String(tracing.AttrClockID, c.clock.ID()),
			attribute.String(tracing.AttrDirection, c.direction.String()),
		)
	}()

	switch ev.Kind {
	case scheduler.EventTick:
		return scheduler.Continue, c.tick(ctx)
	case scheduler.EventInterrupt:
		log.Info(log.CatTimer, "Interrupted")
		return scheduler.Quit, nil
	case scheduler.EventKey:
		a, ok := c.registry.Lookup(ev.Key)
		if !ok {
			span.AddEvent(tracing.EventKeyIgnored)
			return scheduler.Continue, nil
		}
		span.SetAttributes(attribute.String(tracing.AttrActionKind, a.Kind.String()))
		return c.apply(ctx, a)
	default:
		return scheduler.Continue, nil
	}
}

func (c *Controller) apply(ctx context.Context, a action.Action) (scheduler.Outcome, error) {
	switch a.Kind {
	case action.Stop:
		return scheduler.Continue, c.stop(ctx)
	case action.Resume:
		return scheduler.Continue, c.resume(ctx)
	case action.Reset:
		c.clock.Reset()
		log.Debug(log.CatTimer, "Clock reset", "value", c.clock, "state", c.state)
		return scheduler.Continue, nil
	case action.Quit:
		log.Info(log.CatTimer, "Quit", "value", c.clock)
		return scheduler.Quit, nil
	default:
		return scheduler.Continue, nil
	}
}

func (c *Controller) tick(ctx context.Context) error {
	if c.state == Stopped {
		return nil
	}

	err := c.clock.Tick(c.direction)
	if err != nil && !errors.Is(err, clock.ErrBoundary) {
		return err
	}
	if err == nil && !c.clock.AtLimit(c.direction) {
		return nil
	}

	trace.SpanFromContext(ctx).AddEvent(tracing.EventBoundaryReached)
	log.Info(log.CatTimer, "Boundary reached", "value", c.clock)
	return c.stop(ctx)
}

func (c *Controller) stop(ctx context.Context) error {
	if c.state == Stopped {
		return nil
	}
	if err := c.signals.SignalStop(); err != nil {
		return fmt.Errorf("signal stop: %w", err)
	}
	c.setState(ctx, Stopped)
	return nil
}

func (c *Controller) resume(ctx context.Context) error {
	if c.state == Running {
		return nil
	}
	if err := c.signals.SignalResume(ctx); err != nil {
		return fmt.Errorf("signal resume: %w", err)
	}
	c.setState(ctx, Running)
	return nil
}

func (c *Controller) setState(ctx context.Context, s State) {
	from := c.state
	c.state = s
	trace.SpanFromContext(ctx).AddEvent(tracing.EventStateChanged, trace.WithAttributes(
		attribute.String("from", from.String()),
		attribute.String("to", s.String()),
	))
	log.Info(log.CatTimer, "State changed", "from", from, "to", s, "value", c.clock)
}

// State returns the current run mode.
func (c *Controller) State() State {
	return c.state
}

// Direction returns the counting direction.
func (c *Controller) Direction() clock.Direction {
	return c.direction
}

// Clock returns the controller's clock. Callers must not mutate it.
func (c *Controller) Clock() *clock.Clock {
	return c.clock
}
