package tracing

// Span names.
const (
	SpanHandleEvent = "timer.handle_event"
)

// Span attribute keys.
const (
	AttrEventKind   = "event.kind"
	AttrEventKey    = "event.key"
	AttrOutcome     = "loop.outcome"
	AttrTimerState  = "timer.state"
	AttrClockID     = "clock.id"
	AttrClockValue  = "clock.value"
	AttrDirection   = "clock.direction"
	AttrActionKind  = "action.kind"
	AttrErrorReason = "error.message"
)

// Span event names.
const (
	EventBoundaryReached = "clock.boundary_reached"
	EventStateChanged    = "timer.state_changed"
	EventKeyIgnored      = "key.ignored"
)
