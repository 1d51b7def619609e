package perftest

import "time"

// A Clock is the timestamp source used to time candidate calls.
type Clock interface {
	Now() time.Time
	Since(t time.Time) time.Duration
}

// monotonicClock relies on the monotonic reading carried by time.Now.
type monotonicClock struct{}

func (monotonicClock) Now() time.Time                  { return time.Now() }
func (monotonicClock) Since(t time.Time) time.Duration { return time.Since(t) }
