package config

import (
	"errors"
	"fmt"
)

// File is the top-level configuration file structure.
type File struct {
	Server  ServerConfig  `yaml:"server" json:"server"`
	Browser BrowserConfig `yaml:"browser" json:"browser"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// ServerConfig configures the HTTP transport.
type ServerConfig struct {
	// Host is the interface to bind.
	Host string `yaml:"host" json:"host"`

	// Port is the TCP port to listen on.
	Port int `yaml:"port" json:"port"`

	// Path is the endpoint path serving both JSON-RPC and the SSE stream.
	Path string `yaml:"path" json:"path"`

	// HeartbeatInterval is the SSE heartbeat interval in seconds.
	HeartbeatInterval int `yaml:"heartbeatInterval" json:"heartbeatInterval"`
}

// BrowserConfig configures the managed browser session.
type BrowserConfig struct {
	// Headless controls whether Chromium runs without a visible window.
	// Unset means headless.
	Headless *bool `yaml:"headless" json:"headless"`

	// Timeout is the default page-operation timeout in milliseconds.
	Timeout float64 `yaml:"timeout" json:"timeout"`

	// Install runs the Playwright browser installation before first launch.
	Install bool `yaml:"install" json:"install"`
}

// LoggingConfig configures log output.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error.
	Level string `yaml:"level" json:"level"`

	// Format is the output format: text or json.
	Format string `yaml:"format" json:"format"`
}

// Default returns the built-in configuration.
func Default() *File {
	headless := true
	return &File{
		Server: ServerConfig{
			Host:              "127.0.0.1",
			Port:              3333,
			Path:              "/",
			HeartbeatInterval: 10,
		},
		Browser: BrowserConfig{
			Headless: &headless,
			Timeout:  30000,
			Install:  false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate checks the configuration for values the server would reject.
func (f *File) Validate() error {
	if f.Server.Port < 1 || f.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", f.Server.Port)
	}
	if f.Server.Path == "" || f.Server.Path[0] != '/' {
		return fmt.Errorf("server.path must start with '/', got %q", f.Server.Path)
	}
	if f.Server.HeartbeatInterval < 1 {
		return errors.New("server.heartbeatInterval must be at least 1 second")
	}
	if f.Browser.Timeout < 0 {
		return fmt.Errorf("browser.timeout must not be negative, got %v", f.Browser.Timeout)
	}
	return nil
}

// Merge overlays non-zero values from other onto f. Used to apply a loaded
// file on top of the defaults.
func (f *File) Merge(other *File) {
	if other == nil {
		return
	}
	if other.Server.Host != "" {
		f.Server.Host = other.Server.Host
	}
	if other.Server.Port != 0 {
		f.Server.Port = other.Server.Port
	}
	if other.Server.Path != "" {
		f.Server.Path = other.Server.Path
	}
	if other.Server.HeartbeatInterval != 0 {
		f.Server.HeartbeatInterval = other.Server.HeartbeatInterval
	}
	if other.Browser.Headless != nil {
		f.Browser.Headless = other.Browser.Headless
	}
	if other.Browser.Timeout != 0 {
		f.Browser.Timeout = other.Browser.Timeout
	}
	if other.Browser.Install {
		f.Browser.Install = true
	}
	if other.Logging.Level != "" {
		f.Logging.Level = other.Logging.Level
	}
	if other.Logging.Format != "" {
		f.Logging.Format = other.Logging.Format
	}
}
