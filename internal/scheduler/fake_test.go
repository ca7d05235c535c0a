package scheduler

import (
	"sync"
	"time"
)

// fakeTime is a TimeSource whose timers fire only when the test says so.
type fakeTime struct {
	mu      sync.Mutex
	now     time.Time
	waiters []chan time.Time
}

func newFakeTime() *fakeTime {
	return &fakeTime{now: time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)}
}

func (f *fakeTime) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeTime) After(time.Duration) <-chan time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan time.Time, 1)
	f.waiters = append(f.waiters, ch)
	return ch
}

// pending returns the number of timers waiting to fire.
func (f *fakeTime) pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.waiters)
}

// fire advances one second and fires every pending timer.
func (f *fakeTime) fire() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(time.Second)
	for _, ch := range f.waiters {
		ch <- f.now
	}
	f.waiters = nil
}
