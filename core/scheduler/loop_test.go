package scheduler_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"particle-wui/core/scheduler"
	"particle-wui/core/scheduler/mocks"
	"particle-wui/core/telemetry"
	"particle-wui/core/timer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type recordingSim struct {
	updates []time.Duration
	totals  []time.Duration
	renders int
	fps     []int
	closed  bool
}

func (s *recordingSim) Initialize() error { return nil }
func (s *recordingSim) Update(delta, total time.Duration) {
	s.updates = append(s.updates, delta)
	s.totals = append(s.totals, total)
}
func (s *recordingSim) Render()              { s.renders++ }
func (s *recordingSim) SetFPSToDraw(fps int) { s.fps = append(s.fps, fps) }
func (s *recordingSim) Close() error         { s.closed = true; return nil }

func newLoop(t *testing.T, maxFPS float64, sim scheduler.Simulation, pump scheduler.Pump) (*scheduler.Loop, *timer.ManualClock, *telemetry.Cell) {
	t.Helper()
	clock := timer.NewManualClock(time.Unix(0, 0))
	cell := telemetry.NewCell()
	loop, err := scheduler.New(scheduler.Config{MaxFPS: maxFPS}, pump, sim, scheduler.Options{
		Cell:  cell,
		Clock: clock,
	})
	require.NoError(t, err)
	loop.Start()
	return loop, clock, cell
}

func TestLoop_FrameGate(t *testing.T) {
	sim := &recordingSim{}
	loop, clock, _ := newLoop(t, 30, sim, scheduler.NewChannelPump(1))
	budget := scheduler.Config{MaxFPS: 30}.FrameBudget()

	var stepTimes []time.Duration
	elapsed := time.Duration(0)
	for i := 0; i < 200; i++ {
		clock.Advance(10 * time.Millisecond)
		elapsed += 10 * time.Millisecond
		before := sim.renders
		require.True(t, loop.Step())
		if sim.renders > before {
			stepTimes = append(stepTimes, elapsed)
		}
	}

	require.NotEmpty(t, stepTimes)
	prev := time.Duration(0)
	for _, at := range stepTimes {
		assert.GreaterOrEqual(t, at-prev, budget)
		prev = at
	}
	for _, d := range sim.updates {
		assert.GreaterOrEqual(t, d, budget)
	}
	assert.Equal(t, sim.renders, len(sim.updates))
}

func TestLoop_FPSMatchesStepsInWindow(t *testing.T) {
	sim := &recordingSim{}
	loop, clock, cell := newLoop(t, 30, sim, scheduler.NewChannelPump(1))

	for loop.FPS() == 0 {
		clock.Advance(10 * time.Millisecond)
		require.True(t, loop.Step())
		require.Less(t, sim.renders, 100, "window never closed")
	}

	assert.Equal(t, sim.renders, loop.FPS())
	assert.LessOrEqual(t, loop.FPS(), 30)

	snap := cell.Load()
	assert.Equal(t, loop.FPS(), snap.FPS)
	assert.Equal(t, uint64(sim.renders), snap.Frames)

	// The next window starts from zero.
	windowStart := sim.renders
	published := snap.Frames
	for i := 0; i < 150 && cell.Load().Frames == published; i++ {
		clock.Advance(10 * time.Millisecond)
		loop.Step()
	}
	require.NotEqual(t, published, cell.Load().Frames, "second window never closed")
	assert.Equal(t, sim.renders-windowStart, loop.FPS())
}

func TestLoop_TotalTimeNeverResets(t *testing.T) {
	sim := &recordingSim{}
	loop, clock, _ := newLoop(t, 30, sim, scheduler.NewChannelPump(1))

	for i := 0; i < 300; i++ {
		clock.Advance(10 * time.Millisecond)
		loop.Step()
	}

	require.Greater(t, len(sim.totals), 1)
	for i := 1; i < len(sim.totals); i++ {
		assert.Greater(t, sim.totals[i], sim.totals[i-1])
	}
	assert.Greater(t, sim.totals[len(sim.totals)-1], 2*time.Second)
}

func TestLoop_MessagesDoNotAdvanceTime(t *testing.T) {
	sim := &recordingSim{}
	var seen []scheduler.Message
	pump := scheduler.NewChannelPump(4)

	clock := timer.NewManualClock(time.Unix(0, 0))
	loop, err := scheduler.New(scheduler.Config{MaxFPS: 30}, pump, sim, scheduler.Options{
		Clock: clock,
		Dispatcher: scheduler.DispatcherFunc(func(msg scheduler.Message) {
			seen = append(seen, msg)
		}),
	})
	require.NoError(t, err)
	loop.Start()

	require.True(t, pump.Post(scheduler.Message{Kind: scheduler.KindCommand, Payload: "a"}))
	require.True(t, pump.Post(scheduler.Message{Kind: scheduler.KindCommand, Payload: "b"}))

	clock.Advance(time.Second)
	assert.True(t, loop.Step())
	assert.True(t, loop.Step())
	assert.Len(t, seen, 2)
	assert.Empty(t, sim.updates)

	assert.True(t, loop.Step())
	assert.Len(t, sim.updates, 1)
}

func TestLoop_QuitAfterPendingMessages(t *testing.T) {
	sim := &recordingSim{}
	pump := scheduler.NewChannelPump(4)
	loop, _, _ := newLoop(t, 30, sim, pump)

	require.True(t, pump.Post(scheduler.Message{Kind: scheduler.KindCommand}))
	pump.Quit()

	assert.True(t, loop.Step())
	assert.False(t, loop.Step())
}

func TestLoop_RunUntilQuit(t *testing.T) {
	sim := new(mocks.Simulation)
	sim.On("Initialize").Return(nil).Once()
	sim.On("SetFPSToDraw", mock.Anything).Maybe()
	sim.On("Update", mock.Anything, mock.Anything).Maybe()
	sim.On("Render").Maybe()
	sim.On("Close").Return(nil).Once()

	pump := scheduler.NewChannelPump(1)
	loop, err := scheduler.New(scheduler.Config{MaxFPS: 1000, IdleSleep: time.Millisecond}, pump, sim, scheduler.Options{})
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- loop.Run(context.Background()) }()

	time.Sleep(20 * time.Millisecond)
	pump.Quit()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not quit")
	}
	sim.AssertExpectations(t)
}

func TestLoop_RunStopsOnContext(t *testing.T) {
	sim := &recordingSim{}
	loop, err := scheduler.New(scheduler.Config{MaxFPS: 60}, scheduler.NewChannelPump(1), sim, scheduler.Options{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, loop.Run(ctx))
	assert.True(t, sim.closed)
}

func TestLoop_RunInitializeFailure(t *testing.T) {
	boom := errors.New("no device")
	sim := new(mocks.Simulation)
	sim.On("Initialize").Return(boom).Once()

	loop, err := scheduler.New(scheduler.Config{MaxFPS: 60}, scheduler.NewChannelPump(1), sim, scheduler.Options{})
	require.NoError(t, err)

	err = loop.Run(context.Background())
	assert.ErrorIs(t, err, boom)
	sim.AssertNotCalled(t, "Close")
}

func TestNew_Validation(t *testing.T) {
	_, err := scheduler.New(scheduler.Config{MaxFPS: 0}, scheduler.NewChannelPump(1), &recordingSim{}, scheduler.Options{})
	assert.Error(t, err)

	_, err = scheduler.New(scheduler.Config{MaxFPS: 60}, nil, &recordingSim{}, scheduler.Options{})
	assert.Error(t, err)
}
