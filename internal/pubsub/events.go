// Package pubsub provides a generic publish/subscribe event system used to
// carry frames, log entries and config changes between goroutines.
package pubsub

import (
	"context"
	"time"
)

// EventType represents the type of event being published.
type EventType string

const (
	FrameEvent         EventType = "frame"          // A new timer frame is ready to draw
	LogEvent           EventType = "log"            // A debug log entry was written
	ConfigChangedEvent EventType = "config_changed" // The config file changed on disk
)

// Event represents a published event with a typed payload.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber provides a subscription channel for events.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher allows publishing events with a typed payload.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
