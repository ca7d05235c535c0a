package app

import (
	"context"

	"github.com/zjrosen/pomo/internal/pomodoro"
	"github.com/zjrosen/pomo/internal/pubsub"
	"github.com/zjrosen/pomo/internal/ui/timerview"
)

// Snapshotter is the state a frame is built from.
type Snapshotter interface {
	Snapshot() pomodoro.Snapshot
}

// FramePublisher is the scheduler.Renderer for the terminal UI. The loop
// calls Render after every event; the frame is drawn later on the Bubble Tea
// goroutine, so the loop never touches the terminal itself.
type FramePublisher struct {
	source Snapshotter
	broker *pubsub.Broker[timerview.Frame]
	seq    uint64
}

// NewFramePublisher publishes snapshots of source on broker.
func NewFramePublisher(source Snapshotter, broker *pubsub.Broker[timerview.Frame]) *FramePublisher {
	return &FramePublisher{source: source, broker: broker}
}

// Render publishes the next frame. It never blocks and only the loop may
// call it.
func (p *FramePublisher) Render(_ context.Context) error {
	p.seq++
	p.broker.Publish(pubsub.FrameEvent, timerview.Frame{Seq: p.seq, Snapshot: p.source.Snapshot()})
	return nil
}

// Current returns the last frame without publishing anything. Call it before
// the loop starts, for the frame the UI shows first.
func (p *FramePublisher) Current() timerview.Frame {
	return timerview.Frame{Seq: p.seq, Snapshot: p.source.Snapshot()}
}
