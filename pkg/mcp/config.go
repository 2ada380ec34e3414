package mcp

import (
	"errors"
	"fmt"
	"time"
)

// Config holds MCP server configuration.
type Config struct {
	// Host is the interface to bind. Default: 127.0.0.1.
	Host string `json:"host"`

	// Port is the TCP port to listen on.
	Port int `json:"port"`

	// Path is the HTTP endpoint path. Both the JSON-RPC POST handler and
	// the SSE GET stream live on this one path.
	Path string `json:"path"`

	// HeartbeatInterval is the delay between SSE heartbeat events.
	HeartbeatInterval time.Duration `json:"heartbeatInterval"`

	// ReadTimeout is the HTTP read timeout.
	ReadTimeout time.Duration `json:"readTimeout"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Host:              "127.0.0.1",
		Port:              3333,
		Path:              "/",
		HeartbeatInterval: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
	}
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}

	if c.Path == "" {
		return errors.New("path cannot be empty")
	}

	if c.Path[0] != '/' {
		return fmt.Errorf("path must start with '/', got %q", c.Path)
	}

	if c.HeartbeatInterval < time.Second {
		return errors.New("heartbeatInterval must be at least 1 second")
	}

	return nil
}

// Address returns the listen address for the HTTP server.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
