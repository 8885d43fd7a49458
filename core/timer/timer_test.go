package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestTimer() (*Timer, *ManualClock) {
	clock := NewManualClock(time.Unix(1700000000, 0))
	tm := New(clock)
	tm.Start()
	return tm, clock
}

func TestTimer_PeekDoesNotReset(t *testing.T) {
	tm, clock := newTestTimer()

	clock.Advance(20 * time.Millisecond)
	assert.Equal(t, 20*time.Millisecond, tm.PeekFrameTime())

	clock.Advance(5 * time.Millisecond)
	assert.Equal(t, 25*time.Millisecond, tm.PeekFrameTime())
}

func TestTimer_FrameTimeResetsSample(t *testing.T) {
	tm, clock := newTestTimer()

	clock.Advance(40 * time.Millisecond)
	assert.Equal(t, 40*time.Millisecond, tm.FrameTime())
	assert.Equal(t, time.Duration(0), tm.PeekFrameTime())

	clock.Advance(10 * time.Millisecond)
	assert.Equal(t, 10*time.Millisecond, tm.FrameTime())
}

func TestTimer_ElapsedIgnoresSampling(t *testing.T) {
	tm, clock := newTestTimer()

	for i := 0; i < 5; i++ {
		clock.Advance(100 * time.Millisecond)
		tm.FrameTime()
	}

	assert.Equal(t, 500*time.Millisecond, tm.Elapsed())
}

func TestTimer_StartResetsBoth(t *testing.T) {
	tm, clock := newTestTimer()

	clock.Advance(time.Second)
	tm.Start()

	assert.Equal(t, time.Duration(0), tm.Elapsed())
	assert.Equal(t, time.Duration(0), tm.PeekFrameTime())
}

func TestNew_NilClockUsesSystemClock(t *testing.T) {
	tm := New(nil)
	tm.Start()
	time.Sleep(2 * time.Millisecond)

	assert.Greater(t, tm.Elapsed(), time.Duration(0))
}
