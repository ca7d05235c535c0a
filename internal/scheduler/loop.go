package scheduler

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/pomo/internal/log"
	"github.com/zjrosen/pomo/internal/tracing"
)

// Handler applies one event to the timer state.
type Handler interface {
	Handle(ctx context.Context, ev Event) (Outcome, error)
}

// Renderer draws the current timer state.
type Renderer interface {
	Render(ctx context.Context) error
}

// RenderFunc adapts a function to Renderer.
type RenderFunc func(ctx context.Context) error

// Render calls f.
func (f RenderFunc) Render(ctx context.Context) error { return f(ctx) }

// Loop is the single consumer of the bus. It is the only goroutine that calls
// the Handler, so the state behind it needs no locking.
type Loop struct {
	bus      *Bus
	handler  Handler
	renderer Renderer
	tracer   trace.Tracer
	handled  int
}

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithTracer records a span per handled event.
func WithTracer(tr trace.Tracer) LoopOption {
	return func(l *Loop) {
		if tr != nil {
			l.tracer = tr
		}
	}
}

// NewLoop creates a consumer loop.
func NewLoop(bus *Bus, h Handler, r Renderer, opts ...LoopOption) *Loop {
	l := &Loop{
		bus:      bus,
		handler:  h,
		renderer: r,
		tracer:   noop.NewTracerProvider().Tracer("noop"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run renders once, then handles events one at a time until the handler asks
// to quit (returns nil), the bus closes (ErrClosed), ctx is done, or a render
// fails. Handler errors are logged and do not stop the loop.
func (l *Loop) Run(ctx context.Context) error {
	if err := l.renderer.Render(ctx); err != nil {
		return fmt.Errorf("initial render: %w", err)
	}

	for {
		ev, err := l.bus.Next(ctx)
		if err != nil {
			if errors.Is(err, ErrClosed) {
				log.Info(log.CatSched, "Event source closed", "handled", l.handled)
			}
			return err
		}

		if l.handle(ctx, ev) == Quit {
			log.Info(log.CatSched, "Quit requested", "handled", l.handled)
			return nil
		}

		if err := l.renderer.Render(ctx); err != nil {
			return fmt.Errorf("render: %w", err)
		}
	}
}

func (l *Loop) handle(ctx context.Context, ev Event) Outcome {
	attrs := []attribute.KeyValue{attribute.String(tracing.AttrEventKind, ev.Kind.String())}
	if ev.Kind == EventKey {
		attrs = append(attrs, attribute.String(tracing.AttrEventKey, string(ev.Key)))
	}
	ctx, span := l.tracer.Start(ctx, tracing.SpanHandleEvent, trace.WithAttributes(attrs...))
	defer span.End()

	l.handled++
	out, err := l.handler.Handle(ctx, ev)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.String(tracing.AttrErrorReason, err.Error()))
		log.ErrorErr(log.CatSched, "Event handling failed", err, "event", ev)
	}
	if out == Quit {
		span.SetAttributes(attribute.String(tracing.AttrOutcome, "quit"))
	} else {
		span.SetAttributes(attribute.String(tracing.AttrOutcome, "continue"))
	}
	return out
}

// Handled returns the number of events handled so far.
func (l *Loop) Handled() int {
	return l.handled
}
