package scheduler

import "time"

// TimeSource abstracts the wall clock so the ticker can be driven by tests.
type TimeSource interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

// RealTime is the production TimeSource.
type RealTime struct{}

// Now returns the current time.
func (RealTime) Now() time.Time { return time.Now() }

// After waits for d to elapse and then sends the current time.
func (RealTime) After(d time.Duration) <-chan time.Time { return time.After(d) }
