package server

import (
	"errors"
	"fmt"
	"time"
)

// Config holds configuration for the diagnostics HTTP server.
// It is built once at startup and never mutated afterwards.
type Config struct {
	// Port is the port where the server will listen. Zero picks a free port.
	Port uint16 `mapstructure:"port" default:"10002"`
	// MaxQueued bounds accepted connections waiting for a free worker.
	MaxQueued uint16 `mapstructure:"max_queued" default:"100"`
	// MaxThreads bounds concurrently served requests.
	MaxThreads uint16 `mapstructure:"max_threads" default:"2"`
	// IdleTimeout is how long an idle keep-alive connection keeps its slot.
	IdleTimeout time.Duration `mapstructure:"idle_timeout" default:"3s"`
	// Disabled prevents the server from ever binding a socket.
	Disabled bool `mapstructure:"disabled" default:"false"`
	// ContentRoot is the directory, relative to the executable, holding static files.
	ContentRoot string `mapstructure:"content_root" default:"html"`
	// ShutdownTimeout bounds how long in-flight requests may drain on shutdown.
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" default:"5s"`
	// ApiKey protects the telemetry endpoints when set.
	ApiKey string `mapstructure:"api_key" default:""`
	// Docs exposes the swagger UI under /swagger.
	Docs bool `mapstructure:"docs" default:"false"`
}

// DefaultConfig returns the built-in server defaults.
func DefaultConfig() Config {
	return Config{
		Port:            10002,
		MaxQueued:       100,
		MaxThreads:      2,
		IdleTimeout:     3 * time.Second,
		ContentRoot:     "html",
		ShutdownTimeout: 5 * time.Second,
	}
}

// Validate checks the invariants of an enabled server.
// A disabled server is always valid.
func (c Config) Validate() error {
	if c.Disabled {
		return nil
	}
	if c.MaxThreads < 1 {
		return errors.New("server.max_threads must be at least 1")
	}
	if c.IdleTimeout < 0 {
		return fmt.Errorf("server.idle_timeout must not be negative: %s", c.IdleTimeout)
	}
	if c.ContentRoot == "" {
		return errors.New("server.content_root must not be empty")
	}
	return nil
}

// Address returns the listen address for the configured port.
func (c Config) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Capacity is the total number of connections the server admits at once.
func (c Config) Capacity() int {
	return int(c.MaxThreads) + int(c.MaxQueued)
}
