package timer

import "time"

// Timer measures elapsed time against a Clock.
// A Timer is owned by a single goroutine and is not safe for concurrent use.
type Timer struct {
	clock      Clock
	start      time.Time
	lastSample time.Time
}

// New creates a stopped Timer. Call Start before reading it.
func New(clock Clock) *Timer {
	if clock == nil {
		clock = SystemClock()
	}
	now := clock.Now()
	return &Timer{clock: clock, start: now, lastSample: now}
}

// Start resets both the start point and the sample point to now.
func (t *Timer) Start() {
	now := t.clock.Now()
	t.start = now
	t.lastSample = now
}

// FrameTime returns the time since the last sample and makes now the new sample point.
func (t *Timer) FrameTime() time.Duration {
	now := t.clock.Now()
	d := now.Sub(t.lastSample)
	t.lastSample = now
	return d
}

// PeekFrameTime returns the time since the last sample without resetting it.
func (t *Timer) PeekFrameTime() time.Duration {
	return t.clock.Now().Sub(t.lastSample)
}

// Elapsed returns the time since Start.
func (t *Timer) Elapsed() time.Duration {
	return t.clock.Now().Sub(t.start)
}
