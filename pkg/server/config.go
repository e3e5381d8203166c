package server

import (
	"log"
	"time"
)

// Config holds server configuration.
type Config struct {
	// Addr is the listen address. Default: ":8080".
	Addr string

	// ReadTimeout is the maximum time to read a request.
	// Default: 10 seconds.
	ReadTimeout time.Duration

	// WriteTimeout is the maximum time to write a response.
	// Default: 30 seconds.
	WriteTimeout time.Duration

	// ShutdownTimeout is how long Shutdown waits for in-flight requests.
	// Default: 10 seconds.
	ShutdownTimeout time.Duration

	// Pretty enables pretty-printed HTML output. Useful in development.
	Pretty bool

	// DevReload enables the /dev/reload WebSocket channel.
	DevReload bool

	// Metrics enables the Prometheus /metrics endpoint and the request
	// metrics middleware. Default: true (via DefaultConfig).
	Metrics bool

	// Tracing enables the OpenTelemetry request middleware.
	Tracing bool

	// Logger is the server logger. Default: log.Default().
	Logger *log.Logger
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Addr:            ":8080",
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		Metrics:         true,
	}
}

func (c *Config) fill() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 10 * time.Second
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 30 * time.Second
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = 10 * time.Second
	}
	if c.Logger == nil {
		c.Logger = log.Default()
	}
}
