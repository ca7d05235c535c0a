// Package timerview renders the timer screen: the clock at column 2 of the
// first row and one line per action below it.
package timerview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/pomo/internal/action"
	"github.com/zjrosen/pomo/internal/pomodoro"
	"github.com/zjrosen/pomo/internal/ui/styles"
)

// ClockColumn is the column the clock starts at.
const ClockColumn = 2

// Frame is one redraw produced by the scheduler loop.
type Frame struct {
	Seq      uint64
	Snapshot pomodoro.Snapshot
}

// Options controls optional parts of the screen.
type Options struct {
	ShowState bool
}

// Status returns the word shown next to the clock.
func Status(s pomodoro.Snapshot) string {
	switch {
	case s.Finished && s.State == pomodoro.Stopped:
		return "done"
	case s.State == pomodoro.Stopped:
		return "paused"
	default:
		return "running"
	}
}

// Render draws s into a width x height area. Lines are cut at width and rows
// past height are dropped. A non-positive width or height means unbounded.
func Render(s pomodoro.Snapshot, width, height int, opts Options) string {
	rows := make([]string, 0, len(s.Actions)+1)
	rows = append(rows, clockRow(s, opts))
	for _, a := range s.Actions {
		rows = append(rows, actionRow(a))
	}

	if height > 0 && len(rows) > height {
		rows = rows[:height]
	}
	if width > 0 {
		for i, row := range rows {
			if ansi.StringWidth(row) > width {
				rows[i] = ansi.Truncate(row, width, "")
			}
		}
	}
	return strings.Join(rows, "\n")
}

func clockRow(s pomodoro.Snapshot, opts Options) string {
	style := styles.ClockRunningStyle
	switch {
	case s.Finished && s.State == pomodoro.Stopped:
		style = styles.ClockDoneStyle
	case s.State == pomodoro.Stopped:
		style = styles.ClockStoppedStyle
	}

	row := strings.Repeat(" ", ClockColumn) + style.Render(s.ClockText)
	if opts.ShowState {
		row = lipgloss.JoinHorizontal(lipgloss.Top, row, " ", styles.StatusTextStyle.Render(Status(s)))
	}
	return row
}

func actionRow(a action.Action) string {
	return styles.ActionArrowStyle.Render("→") + " (" +
		styles.ActionShortcutStyle.Render(string(a.Shortcut)) + ") " +
		styles.ActionDescriptionStyle.Render(a.Description)
}
