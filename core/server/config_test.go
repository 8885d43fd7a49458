package server_test

import (
	"testing"
	"time"

	"particle-wui/core/server"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	c := server.DefaultConfig()

	assert.Equal(t, uint16(10002), c.Port)
	assert.Equal(t, uint16(100), c.MaxQueued)
	assert.Equal(t, uint16(2), c.MaxThreads)
	assert.Equal(t, 3*time.Second, c.IdleTimeout)
	assert.False(t, c.Disabled)
	assert.NoError(t, c.Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *server.Config)
		wantErr bool
	}{
		{"Defaults", func(c *server.Config) {}, false},
		{"ZeroThreads", func(c *server.Config) { c.MaxThreads = 0 }, true},
		{"ZeroThreadsDisabled", func(c *server.Config) { c.MaxThreads = 0; c.Disabled = true }, false},
		{"ZeroQueue", func(c *server.Config) { c.MaxQueued = 0 }, false},
		{"NegativeIdle", func(c *server.Config) { c.IdleTimeout = -time.Second }, true},
		{"EmptyRoot", func(c *server.Config) { c.ContentRoot = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := server.DefaultConfig()
			tt.mutate(&c)
			if tt.wantErr {
				assert.Error(t, c.Validate())
			} else {
				assert.NoError(t, c.Validate())
			}
		})
	}
}

func TestConfig_AddressAndCapacity(t *testing.T) {
	c := server.Config{Port: 9090, MaxThreads: 2, MaxQueued: 100}

	assert.Equal(t, ":9090", c.Address())
	assert.Equal(t, 102, c.Capacity())
}
