package scheduler

import (
	"fmt"
	"time"
)

// Config holds configuration for the frame scheduler.
type Config struct {
	// MaxFPS caps how many frames run per second.
	MaxFPS float64 `mapstructure:"max_fps" default:"60"`
	// IdleSleep is slept when an iteration did no work. Zero polls continuously.
	IdleSleep time.Duration `mapstructure:"idle_sleep" default:"0s"`
}

// Validate checks the scheduler settings.
func (c Config) Validate() error {
	if c.MaxFPS <= 0 {
		return fmt.Errorf("scheduler.max_fps must be positive: %v", c.MaxFPS)
	}
	if c.IdleSleep < 0 {
		return fmt.Errorf("scheduler.idle_sleep must not be negative: %s", c.IdleSleep)
	}
	return nil
}

// FrameBudget is the minimum time between two frames.
func (c Config) FrameBudget() time.Duration {
	return time.Duration(float64(time.Second) / c.MaxFPS)
}
