package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"particle-wui/core/telemetry"
	"particle-wui/core/timer"

	"go.uber.org/zap"
)

const fpsWindow = time.Second

// Loop is the frame-paced main loop. It is not safe for concurrent use; only FPS
// may be read from other goroutines through the telemetry cell.
type Loop struct {
	cfg        Config
	budget     time.Duration
	pump       Pump
	dispatcher Dispatcher
	sim        Simulation
	cell       *telemetry.Cell
	clock      timer.Clock
	logger     *zap.Logger

	fpsTimer *timer.Timer
	timer    *timer.Timer

	fps     int
	counter int
	frames  uint64
}

// Options carries the optional collaborators of a Loop.
type Options struct {
	Dispatcher Dispatcher
	Cell       *telemetry.Cell
	Clock      timer.Clock
	Logger     *zap.Logger
}

// New creates a loop. Missing options fall back to a log dispatcher, a private
// telemetry cell, the system clock and a no-op logger.
func New(cfg Config, pump Pump, sim Simulation, opts Options) (*Loop, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if pump == nil || sim == nil {
		return nil, errors.New("scheduler requires a pump and a simulation")
	}

	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Dispatcher == nil {
		opts.Dispatcher = LogDispatcher(opts.Logger)
	}
	if opts.Cell == nil {
		opts.Cell = telemetry.NewCell()
	}
	if opts.Clock == nil {
		opts.Clock = timer.SystemClock()
	}

	return &Loop{
		cfg:        cfg,
		budget:     cfg.FrameBudget(),
		pump:       pump,
		dispatcher: opts.Dispatcher,
		sim:        sim,
		cell:       opts.Cell,
		clock:      opts.Clock,
		logger:     opts.Logger,
		fpsTimer:   timer.New(opts.Clock),
		timer:      timer.New(opts.Clock),
	}, nil
}

// Start resets both timers. Run calls it; tests driving Step call it directly.
func (l *Loop) Start() {
	l.fpsTimer.Start()
	l.timer.Start()
	l.fps = 0
	l.counter = 0
}

// FPS returns the frame count of the last completed window.
func (l *Loop) FPS() int { return l.fps }

// Frames returns the number of frames run since Start.
func (l *Loop) Frames() uint64 { return l.frames }

// Step runs one iteration. It returns false once a quit message was taken.
func (l *Loop) Step() bool {
	cont, _ := l.step()
	return cont
}

func (l *Loop) step() (cont, worked bool) {
	if msg, ok := l.pump.Peek(); ok {
		if msg.Kind == KindQuit {
			return false, true
		}
		l.dispatcher.Dispatch(msg)
		return true, true
	}

	if l.fpsTimer.PeekFrameTime() < l.budget {
		return true, false
	}

	l.sim.SetFPSToDraw(l.fps)
	l.sim.Update(l.fpsTimer.FrameTime(), l.timer.Elapsed())
	l.sim.Render()
	l.counter++
	l.frames++

	if l.fpsTimer.Elapsed() > fpsWindow {
		l.fps = l.counter
		l.counter = 0
		l.fpsTimer.Start()
		l.publish()
	}
	return true, true
}

func (l *Loop) publish() {
	l.cell.Store(telemetry.Snapshot{
		FPS:       l.fps,
		Frames:    l.frames,
		TotalTime: l.timer.Elapsed(),
		UpdatedAt: l.clock.Now(),
	})
}

// Run initializes the simulation and loops until a quit message arrives or ctx is
// done. The simulation is closed before Run returns.
func (l *Loop) Run(ctx context.Context) (err error) {
	if err := l.sim.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize simulation: %w", err)
	}
	defer func() {
		if cerr := l.sim.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close simulation: %w", cerr)
		}
	}()

	l.Start()
	l.publish()
	l.logger.Info("Frame loop started",
		zap.Float64("max_fps", l.cfg.MaxFPS),
		zap.Duration("frame_budget", l.budget),
	)

	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Frame loop cancelled", zap.Uint64("frames", l.frames))
			return nil
		default:
		}

		cont, worked := l.step()
		if !cont {
			l.logger.Info("Frame loop quit", zap.Uint64("frames", l.frames))
			return nil
		}
		if !worked && l.cfg.IdleSleep > 0 {
			time.Sleep(l.cfg.IdleSleep)
		}
	}
}
