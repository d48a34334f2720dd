package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/pairchat-server/internal/core"
)

// Config holds server configuration values.
type Config struct {
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`

	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`

	// MaxMessageBytes caps a single inbound WebSocket frame.
	MaxMessageBytes int64 `mapstructure:"max_message_bytes" yaml:"max_message_bytes"`
	// MessagesPerMinute limits inbound frames per connection. 0 disables the limit.
	MessagesPerMinute int `mapstructure:"messages_per_minute" yaml:"messages_per_minute"`
	// EventBuffer is the per-connection outbound queue size.
	EventBuffer int `mapstructure:"event_buffer" yaml:"event_buffer"`

	// ReceiverPolicy is "overwrite" or "guarded".
	ReceiverPolicy string `mapstructure:"receiver_policy" yaml:"receiver_policy"`
	// AllowedOrigins lists host patterns accepted for cross-origin WebSocket
	// upgrades. Empty accepts any origin.
	AllowedOrigins []string `mapstructure:"allowed_origins" yaml:"allowed_origins,omitempty"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		Addr:              ":8080",
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		LogLevel:          "info",
		LogFormat:         "console",
		MaxMessageBytes:   64 * 1024,
		MessagesPerMinute: 600,
		EventBuffer:       32,
		ReceiverPolicy:    string(core.ReceiverPolicyOverwrite),
	}
}

// UpdateFrom overwrites non-zero values from other config into receiver.
func (c *Config) UpdateFrom(other Config) {
	if other.Addr != "" {
		c.Addr = other.Addr
	}
	if other.ReadHeaderTimeout != 0 {
		c.ReadHeaderTimeout = other.ReadHeaderTimeout
	}
	if other.ShutdownTimeout != 0 {
		c.ShutdownTimeout = other.ShutdownTimeout
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.LogFormat != "" {
		c.LogFormat = other.LogFormat
	}
	if other.MaxMessageBytes != 0 {
		c.MaxMessageBytes = other.MaxMessageBytes
	}
	if other.MessagesPerMinute != 0 {
		c.MessagesPerMinute = other.MessagesPerMinute
	}
	if other.EventBuffer != 0 {
		c.EventBuffer = other.EventBuffer
	}
	if other.ReceiverPolicy != "" {
		c.ReceiverPolicy = other.ReceiverPolicy
	}
	if len(other.AllowedOrigins) > 0 {
		c.AllowedOrigins = other.AllowedOrigins
	}
}

// Validate checks values that would otherwise fail at runtime.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr is required")
	}
	if c.MaxMessageBytes <= 0 {
		return fmt.Errorf("max_message_bytes must be positive, got %d", c.MaxMessageBytes)
	}
	if c.MessagesPerMinute < 0 {
		return fmt.Errorf("messages_per_minute must not be negative, got %d", c.MessagesPerMinute)
	}
	if _, ok := core.ParseReceiverPolicy(c.ReceiverPolicy); !ok {
		return fmt.Errorf("unknown receiver_policy %q", c.ReceiverPolicy)
	}
	return nil
}

// Policy returns the parsed receiver policy, falling back to overwrite.
func (c Config) Policy() core.ReceiverPolicy {
	p, ok := core.ParseReceiverPolicy(c.ReceiverPolicy)
	if !ok {
		return core.ReceiverPolicyOverwrite
	}
	return p
}
