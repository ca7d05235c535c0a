package clock

import (
	"github.com/google/uuid"

	"github.com/zjrosen/pomo/internal/log"
)

// Direction selects which way a Clock moves on each tick.
type Direction int

const (
	// CountDown decrements toward 00:00:00.
	CountDown Direction = iota
	// CountUp increments toward 23:59:59.
	CountUp
)

func (d Direction) String() string {
	switch d {
	case CountDown:
		return "countdown"
	case CountUp:
		return "countup"
	default:
		return "unknown"
	}
}

// ParseDirection converts a config value into a Direction.
// An empty string means CountDown.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "", "countdown":
		return CountDown, true
	case "countup":
		return CountUp, true
	default:
		return CountDown, false
	}
}

// DefaultCountdown is the starting value of a countdown timer.
var DefaultCountdown = MustBuild(0, 1, 0)

// Clock owns a single Time. It is not safe for concurrent use; the timer
// controller is its only owner.
type Clock struct {
	id      string
	initial Time
	current Time
}

// New creates a Clock starting at initial.
func New(initial Time) *Clock {
	return &Clock{
		id:      uuid.NewString(),
		initial: initial,
		current: initial,
	}
}

// ForDirection creates a Clock with the default start value for d:
// DefaultCountdown when counting down, zero when counting up.
func ForDirection(d Direction) *Clock {
	if d == CountUp {
		return New(Time{})
	}
	return New(DefaultCountdown)
}

// ID identifies the clock in logs and traces.
func (c *Clock) ID() string {
	return c.id
}

// Time returns the current value.
func (c *Clock) Time() Time {
	return c.current
}

// Initial returns the value Reset restores.
func (c *Clock) Initial() Time {
	return c.initial
}

// Tick moves the clock one second in direction d.
// Returns ErrBoundary, leaving the value unchanged, at either limit.
func (c *Clock) Tick(d Direction) error {
	var err error
	if d == CountUp {
		err = c.current.Increment()
	} else {
		err = c.current.Decrement()
	}
	if err != nil {
		log.Debug(log.CatClock, "Clock boundary", "clock", c.id, "direction", d, "value", c.current)
	}
	return err
}

// Reset recreates the current value from the initial one.
func (c *Clock) Reset() {
	c.current = c.initial
}

// String formats the current value as HH:MM:SS.
func (c *Clock) String() string {
	return c.current.String()
}

// AtLimit reports whether the next tick in direction d would hit a boundary.
func (c *Clock) AtLimit(d Direction) bool {
	if d == CountUp {
		return c.current.Seconds() == MaxSeconds
	}
	return c.current.IsZero()
}
