package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/zjrosen/pomo/internal/tracing"
)

// recordingHandler quits on 'q' and fails on 'e'.
type recordingHandler struct {
	mu     sync.Mutex
	events []Event
}

func (h *recordingHandler) Handle(_ context.Context, ev Event) (Outcome, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, ev)
	if ev.Kind == EventKey && ev.Key == 'q' {
		return Quit, nil
	}
	if ev.Kind == EventKey && ev.Key == 'e' {
		return Continue, errors.New("handler failed")
	}
	return Continue, nil
}

func (h *recordingHandler) kinds() []EventKind {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]EventKind, 0, len(h.events))
	for _, ev := range h.events {
		out = append(out, ev.Kind)
	}
	return out
}

type countingRenderer struct {
	mu     sync.Mutex
	count  int
	failAt int
}

func (r *countingRenderer) Render(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.count++
	if r.failAt > 0 && r.count == r.failAt {
		return errors.New("terminal gone")
	}
	return nil
}

func (r *countingRenderer) renders() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

func TestLoop_HandlesInOrderUntilQuit(t *testing.T) {
	bus := NewBus()
	h := &recordingHandler{}
	r := &countingRenderer{}
	loop := NewLoop(bus, h, r)

	ctx := context.Background()
	require.NoError(t, bus.Emit(ctx, Tick(time.Now())))
	require.NoError(t, bus.Emit(ctx, KeyPress('x')))
	require.NoError(t, bus.Emit(ctx, KeyPress('q')))
	require.NoError(t, bus.Emit(ctx, Tick(time.Now()))) // never handled

	require.NoError(t, loop.Run(ctx))
	require.Equal(t, []EventKind{EventTick, EventKey, EventKey}, h.kinds())
	require.Equal(t, 3, loop.Handled())
	require.Equal(t, 3, r.renders(), "initial render plus one per non-quit event")
	require.Equal(t, 1, bus.Len())
}

func TestLoop_HandlerErrorDoesNotStopLoop(t *testing.T) {
	bus := NewBus()
	h := &recordingHandler{}
	loop := NewLoop(bus, h, &countingRenderer{})

	ctx := context.Background()
	require.NoError(t, bus.Emit(ctx, KeyPress('e')))
	require.NoError(t, bus.Emit(ctx, KeyPress('q')))

	require.NoError(t, loop.Run(ctx))
	require.Len(t, h.kinds(), 2)
}

func TestLoop_InterruptHandledLikeAnyEvent(t *testing.T) {
	bus := NewBus()
	h := &recordingHandler{}
	loop := NewLoop(bus, h, RenderFunc(func(context.Context) error { return nil }))

	ctx := context.Background()
	require.NoError(t, bus.Emit(ctx, Interrupt()))
	require.NoError(t, bus.Emit(ctx, KeyPress('q')))
	require.NoError(t, loop.Run(ctx))
	require.Equal(t, []EventKind{EventInterrupt, EventKey}, h.kinds())
}

func TestLoop_ClosedBusEndsLoop(t *testing.T) {
	bus := NewBus()
	loop := NewLoop(bus, &recordingHandler{}, &countingRenderer{})

	errCh := make(chan error, 1)
	go func() { errCh <- loop.Run(context.Background()) }()

	bus.Close()
	select {
	case err := <-errCh:
		require.ErrorIs(t, err, ErrClosed)
	case <-time.After(time.Second):
		require.Fail(t, "loop did not exit on closed bus")
	}
}

func TestLoop_ContextCancelled(t *testing.T) {
	bus := NewBus()
	loop := NewLoop(bus, &recordingHandler{}, &countingRenderer{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, loop.Run(ctx), context.Canceled)
}

func TestLoop_RenderFailureIsReturned(t *testing.T) {
	bus := NewBus()
	loop := NewLoop(bus, &recordingHandler{}, &countingRenderer{failAt: 2})

	require.NoError(t, bus.Emit(context.Background(), Tick(time.Now())))
	err := loop.Run(context.Background())
	require.ErrorContains(t, err, "render: terminal gone")

	loop = NewLoop(bus, &recordingHandler{}, &countingRenderer{failAt: 1})
	require.ErrorContains(t, loop.Run(context.Background()), "initial render")
}

func TestLoop_RecordsSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	defer func() { _ = provider.Shutdown(context.Background()) }()

	bus := NewBus()
	loop := NewLoop(bus, &recordingHandler{}, &countingRenderer{}, WithTracer(provider.Tracer("test")))

	ctx := context.Background()
	require.NoError(t, bus.Emit(ctx, KeyPress('e')))
	require.NoError(t, bus.Emit(ctx, KeyPress('q')))
	require.NoError(t, loop.Run(ctx))

	spans := recorder.Ended()
	require.Len(t, spans, 2)

	first := spans[0]
	require.Equal(t, tracing.SpanHandleEvent, first.Name())
	require.Equal(t, "Error", first.Status().Code.String())
	require.Contains(t, first.Attributes(), attribute.String(tracing.AttrErrorReason, "handler failed"))

	attrs := map[string]string{}
	for _, kv := range spans[1].Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	require.Equal(t, "key", attrs[tracing.AttrEventKind])
	require.Equal(t, "q", attrs[tracing.AttrEventKey])
	require.Equal(t, "quit", attrs[tracing.AttrOutcome])
}
