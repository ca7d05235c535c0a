package pomodoro

import (
	"github.com/zjrosen/pomo/internal/action"
	"github.com/zjrosen/pomo/internal/clock"
)

// Snapshot is an immutable copy of what the screen shows.
type Snapshot struct {
	ClockID   string
	ClockText string
	State     State
	Direction clock.Direction
	// Finished is set while the clock sits on its limit.
	Finished bool
	Actions  []action.Action
}

// Snapshot copies the current display state.
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		ClockID:   c.clock.ID(),
		ClockText: c.clock.String(),
		State:     c.state,
		Direction: c.direction,
		Finished:  c.clock.AtLimit(c.direction),
		Actions:   c.registry.All(),
	}
}

// Lines returns the clock followed by one line per action, in registry order.
func (c *Controller) Lines() []string {
	return c.Snapshot().Lines()
}

// Lines returns the clock followed by one line per action.
func (s Snapshot) Lines() []string {
	lines := make([]string, 0, len(s.Actions)+1)
	lines = append(lines, s.ClockText)
	for _, a := range s.Actions {
		lines = append(lines, a.String())
	}
	return lines
}
