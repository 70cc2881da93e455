package ratelimit

import (
	"time"
)

// Limiter defines the interface for rate limiting expensive upstream
// requests.
type Limiter interface {
	// Wait blocks until the next request is permitted.
	Wait()
}

// Interval permits one request per configured interval, measured from
// the start of one permitted call to the start of the next. The first
// call never blocks.
//
// Interval is not safe for concurrent use: the pipeline runs a single
// ingestion worker, so the last-permitted instant is unguarded. Wrap it
// in a mutex before sharing across goroutines.
type Interval struct {
	interval time.Duration
	clock    func() time.Time
	sleep    func(time.Duration)
	last     time.Time
	primed   bool
}

// NewInterval creates an interval limiter using the real clock.
func NewInterval(interval time.Duration) *Interval {
	return NewIntervalWithClock(interval, time.Now, time.Sleep)
}

// NewIntervalWithClock creates an interval limiter with an injectable
// clock and sleep function for deterministic tests.
func NewIntervalWithClock(interval time.Duration, clock func() time.Time, sleep func(time.Duration)) *Interval {
	return &Interval{
		interval: interval,
		clock:    clock,
		sleep:    sleep,
	}
}

// Wait blocks until at least the configured interval has elapsed since
// the start of the previous permitted call. The sleep is the exact
// residual, never a rounded or padded value, and the clock is re-read
// after waking so sleep overhead does not accumulate as drift.
func (l *Interval) Wait() {
	now := l.clock()
	if !l.primed {
		l.last = now
		l.primed = true
		return
	}

	remaining := l.interval - now.Sub(l.last)
	if remaining > 0 {
		l.sleep(remaining)
		now = l.clock()
	}
	l.last = now
}
