package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const (
	waitFor   = time.Second
	pollEvery = 2 * time.Millisecond
)

// startTicker runs a ticker on a fake clock and returns a function that
// waits for Run's result.
func startTicker(t *testing.T, bus *Bus) (*Ticker, *fakeTime, context.CancelFunc, <-chan error) {
	t.Helper()
	ft := newFakeTime()
	tk := NewTicker(bus, WithTimeSource(ft), WithInterval(time.Second))
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	errCh := make(chan error, 1)
	go func() { errCh <- tk.Run(ctx) }()
	return tk, ft, cancel, errCh
}

func requireNoEvent(t *testing.T, bus *Bus) {
	t.Helper()
	require.Never(t, func() bool { return bus.Len() > 0 }, 30*time.Millisecond, pollEvery)
}

func TestTicker_DeliversTicks(t *testing.T) {
	bus := NewBus()
	tk, ft, _, _ := startTicker(t, bus)

	for i := 1; i <= 3; i++ {
		require.Eventually(t, func() bool { return ft.pending() == 1 }, waitFor, pollEvery)
		ft.fire()

		ev, err := bus.Next(context.Background())
		require.NoError(t, err)
		require.Equal(t, EventTick, ev.Kind)
		require.Equal(t, ft.Now(), ev.At)
	}
	require.Equal(t, int64(3), tk.Ticks())
}

func TestTicker_StopSuspendsUntilResume(t *testing.T) {
	bus := NewBus()
	tk, ft, _, _ := startTicker(t, bus)

	require.Eventually(t, func() bool { return ft.pending() == 1 }, waitFor, pollEvery)
	require.NoError(t, tk.SignalStop())
	require.Eventually(t, tk.Paused, waitFor, pollEvery)

	// The interval elapses while stopped: no tick.
	ft.fire()
	requireNoEvent(t, bus)

	require.NoError(t, tk.SignalResume(context.Background()))
	require.Eventually(t, func() bool { return !tk.Paused() && ft.pending() == 1 }, waitFor, pollEvery)

	ft.fire()
	ev, err := bus.Next(context.Background())
	require.NoError(t, err)
	require.Equal(t, EventTick, ev.Kind)
}

func TestTicker_StopWhilePendingIsNoop(t *testing.T) {
	bus := NewBus()
	tk := NewTicker(bus) // not running: the first stop stays pending

	require.NoError(t, tk.SignalStop())
	done := make(chan struct{})
	go func() {
		_ = tk.SignalStop()
		_ = tk.SignalStop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(100 * time.Millisecond):
		require.Fail(t, "SignalStop blocked")
	}
}

func TestTicker_StopHonoredWhileBusFull(t *testing.T) {
	bus := NewBusWithSize(0) // nobody reads: delivery blocks
	tk, ft, _, _ := startTicker(t, bus)

	require.Eventually(t, func() bool { return ft.pending() == 1 }, waitFor, pollEvery)
	ft.fire()

	require.NoError(t, tk.SignalStop())
	require.Eventually(t, tk.Paused, waitFor, pollEvery)
	require.Equal(t, int64(0), tk.Ticks(), "in-flight tick is dropped")
}

func TestTicker_CloseTerminatesPermanently(t *testing.T) {
	bus := NewBus()
	tk, ft, _, errCh := startTicker(t, bus)

	require.Eventually(t, func() bool { return ft.pending() == 1 }, waitFor, pollEvery)
	require.NoError(t, tk.SignalStop())
	require.Eventually(t, tk.Paused, waitFor, pollEvery)

	tk.Close()
	tk.Close()

	select {
	case err := <-errCh:
		require.ErrorIs(t, err, ErrClosed)
	case <-time.After(waitFor):
		require.Fail(t, "ticker did not terminate")
	}

	<-tk.Done()
	require.ErrorIs(t, tk.SignalResume(context.Background()), ErrClosed)
	require.ErrorIs(t, tk.SignalStop(), ErrClosed)
	require.ErrorIs(t, tk.Run(context.Background()), ErrClosed, "Run cannot be restarted")
}

func TestTicker_ContextCancel(t *testing.T) {
	bus := NewBus()
	tk, ft, cancel, errCh := startTicker(t, bus)

	require.Eventually(t, func() bool { return ft.pending() == 1 }, waitFor, pollEvery)
	cancel()

	select {
	case err := <-errCh:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(waitFor):
		require.Fail(t, "ticker did not stop on cancel")
	}
	require.ErrorIs(t, tk.SignalResume(context.Background()), ErrClosed)
}

func TestTicker_BusClosedTerminates(t *testing.T) {
	bus := NewBusWithSize(0)
	_, ft, _, errCh := startTicker(t, bus)

	require.Eventually(t, func() bool { return ft.pending() == 1 }, waitFor, pollEvery)
	ft.fire()
	bus.Close()

	select {
	case err := <-errCh:
		require.ErrorIs(t, err, ErrClosed)
	case <-time.After(waitFor):
		require.Fail(t, "ticker did not observe closed bus")
	}
}

func TestTicker_ResumeBlocksUntilReceived(t *testing.T) {
	tk := NewTicker(NewBus())
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	// Nobody is waiting for the resume, so the call waits until ctx expires.
	require.ErrorIs(t, tk.SignalResume(ctx), context.DeadlineExceeded)
}

func TestRealTime(t *testing.T) {
	var rt RealTime
	require.WithinDuration(t, time.Now(), rt.Now(), time.Second)
	select {
	case <-rt.After(time.Millisecond):
	case <-time.After(time.Second):
		require.Fail(t, "RealTime.After never fired")
	}
}
