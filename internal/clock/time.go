// Package clock provides the time value the timer counts with and the Clock
// that owns it.
package clock

import (
	"errors"
	"fmt"
)

// MaxSeconds is the largest representable value (23:59:59).
const MaxSeconds = 24*60*60 - 1

var (
	// ErrInvalidTime is returned when an hour, minute or second component is
	// outside its natural range.
	ErrInvalidTime = errors.New("invalid time")

	// ErrBoundary is returned when an increment or decrement would leave
	// [0, MaxSeconds]. The value is left unchanged.
	ErrBoundary = errors.New("time boundary reached")
)

// Time is a duration in whole seconds bounded to [0, MaxSeconds].
// The zero value is 00:00:00.
type Time struct {
	seconds uint32
}

// Build creates a Time from its components. The components are validated
// individually, so Build(0, 60, 0) fails even though 3600 seconds is in range.
func Build(hours, minutes, seconds uint) (Time, error) {
	if hours > 23 || minutes > 59 || seconds > 59 {
		return Time{}, fmt.Errorf("%w: %02d:%02d:%02d", ErrInvalidTime, hours, minutes, seconds)
	}
	return Time{seconds: uint32(seconds + minutes*60 + hours*3600)}, nil //nolint:gosec // bounded above
}

// MustBuild is like Build but panics on invalid components.
// Only use it with constant arguments.
func MustBuild(hours, minutes, seconds uint) Time {
	t, err := Build(hours, minutes, seconds)
	if err != nil {
		panic(err)
	}
	return t
}

// Seconds returns the total number of seconds.
func (t Time) Seconds() int {
	return int(t.seconds)
}

// Components splits the value into hours, minutes and seconds.
func (t Time) Components() (hours, minutes, seconds int) {
	total := int(t.seconds)
	return total / 3600, (total % 3600) / 60, total % 60
}

// IsZero reports whether the value is 00:00:00.
func (t Time) IsZero() bool {
	return t.seconds == 0
}

// Increment adds one second.
func (t *Time) Increment() error {
	if t.seconds >= MaxSeconds {
		return ErrBoundary
	}
	t.seconds++
	return nil
}

// Decrement subtracts one second.
func (t *Time) Decrement() error {
	if t.seconds == 0 {
		return ErrBoundary
	}
	t.seconds--
	return nil
}

// String formats the value as HH:MM:SS.
func (t Time) String() string {
	h, m, s := t.Components()
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
