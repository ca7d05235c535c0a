package pubsub

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// ListenCmd creates a Bubble Tea command that waits for the next event on ch.
// Returns nil if the context is cancelled or the channel is closed.
func ListenCmd[T any](ctx context.Context, ch <-chan Event[T]) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-ch:
			if !ok {
				return nil
			}
			return event
		}
	}
}

// ListenLatestCmd is like ListenCmd but, once an event arrives, drains any
// events already queued behind it and returns only the newest. Use it for
// state snapshots where intermediate values are not worth drawing.
func ListenLatestCmd[T any](ctx context.Context, ch <-chan Event[T]) tea.Cmd {
	return func() tea.Msg {
		var latest Event[T]
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-ch:
			if !ok {
				return nil
			}
			latest = event
		}
		for {
			select {
			case event, ok := <-ch:
				if !ok {
					return latest
				}
				latest = event
			default:
				return latest
			}
		}
	}
}

// ContinuousListener maintains subscription state for the Bubble Tea update
// loop. Call Listen again after handling each event to keep receiving.
type ContinuousListener[T any] struct {
	ctx    context.Context
	ch     <-chan Event[T]
	latest bool
}

// NewContinuousListener subscribes to broker and delivers every event.
// The subscription is cleaned up when ctx is cancelled.
func NewContinuousListener[T any](ctx context.Context, broker *Broker[T]) *ContinuousListener[T] {
	return &ContinuousListener[T]{
		ctx: ctx,
		ch:  broker.Subscribe(ctx),
	}
}

// NewLatestListener subscribes to broker and delivers only the newest queued
// event on each Listen.
func NewLatestListener[T any](ctx context.Context, broker *Broker[T]) *ContinuousListener[T] {
	return &ContinuousListener[T]{
		ctx:    ctx,
		ch:     broker.Subscribe(ctx),
		latest: true,
	}
}

// Listen returns a tea.Cmd that waits for the next event.
func (l *ContinuousListener[T]) Listen() tea.Cmd {
	if l.latest {
		return ListenLatestCmd(l.ctx, l.ch)
	}
	return ListenCmd(l.ctx, l.ch)
}
