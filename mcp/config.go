// Package mcp exposes a game as a Model Context Protocol server so
// language-model clients can play it through tool calls. Sessions are
// keyed by an opaque id the client passes back with each call.
package mcp

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds server settings, populated from the environment.
type Config struct {
	// Name identifies the server to MCP clients.
	Name string `env:"FABULA_MCP_NAME" envDefault:"fabula"`

	// Version is reported in the MCP handshake.
	Version string `env:"FABULA_MCP_VERSION" envDefault:"1.0.0"`

	// SessionTTL is how long an idle session survives before eviction.
	SessionTTL time.Duration `env:"FABULA_SESSION_TTL" envDefault:"168h"`
}

// LoadConfig reads the server configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing MCP configuration: %w", err)
	}
	return cfg, nil
}
