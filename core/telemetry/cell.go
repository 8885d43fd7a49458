package telemetry

import (
	"sync/atomic"
	"time"
)

// Snapshot is the frame statistics published at the end of an FPS window.
type Snapshot struct {
	// FPS is the number of frames rendered during the last completed window.
	FPS int `json:"fps"`
	// Frames is the total number of frames rendered since start.
	Frames uint64 `json:"frames"`
	// TotalTime is the simulation time since start.
	TotalTime time.Duration `json:"-"`
	// TotalSeconds mirrors TotalTime for JSON consumers.
	TotalSeconds float64 `json:"total_seconds"`
	// UpdatedAt is the wall-clock time of publication.
	UpdatedAt time.Time `json:"updated_at"`
}

// Cell is a single-writer, many-reader holder for the latest Snapshot.
type Cell struct {
	v atomic.Pointer[Snapshot]
}

// NewCell creates a Cell holding a zero Snapshot.
func NewCell() *Cell {
	c := &Cell{}
	c.v.Store(&Snapshot{})
	return c
}

// Store publishes s.
func (c *Cell) Store(s Snapshot) {
	s.TotalSeconds = s.TotalTime.Seconds()
	c.v.Store(&s)
}

// Load returns the latest Snapshot.
func (c *Cell) Load() Snapshot {
	if p := c.v.Load(); p != nil {
		return *p
	}
	return Snapshot{}
}
