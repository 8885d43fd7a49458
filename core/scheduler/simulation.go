package scheduler

import (
	"time"

	"go.uber.org/zap"
)

// Simulation is the render collaborator driven by the loop.
// All methods are called from the loop's goroutine only.
type Simulation interface {
	Initialize() error
	Update(delta, total time.Duration)
	Render()
	SetFPSToDraw(fps int)
	Close() error
}

// Headless is a Simulation without a display. It keeps the values it was given so
// the loop can run, and be observed, on machines without a GPU.
type Headless struct {
	logger *zap.Logger

	delta     time.Duration
	total     time.Duration
	fpsToDraw int
	frames    uint64
	lastLog   time.Duration
}

// NewHeadless creates a headless simulation.
func NewHeadless(logger *zap.Logger) *Headless {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Headless{logger: logger}
}

func (h *Headless) Initialize() error {
	h.logger.Info("Headless simulation initialized")
	return nil
}

func (h *Headless) Update(delta, total time.Duration) {
	h.delta = delta
	h.total = total
}

func (h *Headless) Render() {
	h.frames++
	if h.total-h.lastLog >= time.Second {
		h.lastLog = h.total
		h.logger.Debug("Frame rendered",
			zap.Uint64("frames", h.frames),
			zap.Int("fps", h.fpsToDraw),
			zap.Duration("delta", h.delta),
		)
	}
}

func (h *Headless) SetFPSToDraw(fps int) {
	h.fpsToDraw = fps
}

func (h *Headless) Close() error {
	h.logger.Info("Headless simulation closed", zap.Uint64("frames", h.frames))
	return nil
}

// Frames returns how many frames were rendered.
func (h *Headless) Frames() uint64 { return h.frames }

// LastDelta returns the delta of the last Update.
func (h *Headless) LastDelta() time.Duration { return h.delta }

// Total returns the total time of the last Update.
func (h *Headless) Total() time.Duration { return h.total }

// FPSToDraw returns the last FPS value handed to the simulation.
func (h *Headless) FPSToDraw() int { return h.fpsToDraw }
