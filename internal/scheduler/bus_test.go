package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBus_PreservesOrder(t *testing.T) {
	bus := NewBus()
	ctx := context.Background()

	require.NoError(t, bus.Emit(ctx, KeyPress('a')))
	require.NoError(t, bus.Emit(ctx, Tick(time.Now())))
	require.NoError(t, bus.Emit(ctx, KeyPress('b')))
	require.Equal(t, 3, bus.Len())

	var got []string
	for i := 0; i < 3; i++ {
		ev, err := bus.Next(ctx)
		require.NoError(t, err)
		got = append(got, ev.String())
	}
	require.Equal(t, []string{`key('a')`, "tick", `key('b')`}, got)
}

func TestBus_EmitAfterCloseFails(t *testing.T) {
	bus := NewBus()
	bus.Close()
	bus.Close() // idempotent

	require.ErrorIs(t, bus.Emit(context.Background(), Interrupt()), ErrClosed)

	_, err := bus.Next(context.Background())
	require.ErrorIs(t, err, ErrClosed)
}

func TestBus_CloseUnblocksEmit(t *testing.T) {
	bus := NewBusWithSize(0)

	errCh := make(chan error, 1)
	go func() { errCh <- bus.Emit(context.Background(), KeyPress('x')) }()

	time.Sleep(10 * time.Millisecond)
	bus.Close()

	select {
	case err := <-errCh:
		require.ErrorIs(t, err, ErrClosed)
	case <-time.After(time.Second):
		require.Fail(t, "Emit did not unblock on Close")
	}
}

func TestBus_ContextCancellation(t *testing.T) {
	bus := NewBusWithSize(0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, bus.Emit(ctx, KeyPress('x')), context.Canceled)

	_, err := bus.Next(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestEvent_String(t *testing.T) {
	require.Equal(t, "tick", Tick(time.Now()).String())
	require.Equal(t, "interrupt", Interrupt().String())
	require.Equal(t, `key('s')`, KeyPress('s').String())
	require.Equal(t, "event(7)", EventKind(7).String())
}
