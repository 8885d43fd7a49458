package telemetry

import (
	"fmt"
	"time"
)

// Config holds configuration for telemetry persistence and streaming.
type Config struct {
	// RecordInterval is how often the recorder persists the current snapshot.
	RecordInterval time.Duration `mapstructure:"record_interval" default:"5s"`
	// StreamPort is the port of the websocket stream. Zero disables the stream.
	StreamPort uint16 `mapstructure:"stream_port" default:"0"`
	// StreamInterval is how often the stream pushes a snapshot to each client.
	StreamInterval time.Duration `mapstructure:"stream_interval" default:"1s"`
	// HistoryLimit is the default number of samples returned by the history endpoint.
	HistoryLimit int `mapstructure:"history_limit" default:"100"`
}

// Validate checks the telemetry settings.
func (c Config) Validate() error {
	if c.RecordInterval <= 0 {
		return fmt.Errorf("telemetry.record_interval must be positive: %s", c.RecordInterval)
	}
	if c.StreamInterval <= 0 {
		return fmt.Errorf("telemetry.stream_interval must be positive: %s", c.StreamInterval)
	}
	if c.HistoryLimit < 1 {
		return fmt.Errorf("telemetry.history_limit must be at least 1: %d", c.HistoryLimit)
	}
	return nil
}
