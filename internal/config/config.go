// Package config handles configuration loading from YAML files and environment variables.
// Configuration precedence: CLI flags > environment variables > config file > defaults.
package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a wrapper around time.Duration that supports YAML unmarshaling
// from human-readable strings like "5s", "30s", "1m".
type Duration struct {
	time.Duration
}

// UnmarshalYAML implements the yaml.Unmarshaler interface for Duration.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		parsed, err := time.ParseDuration(value.Value)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", value.Value, err)
		}
		d.Duration = parsed
		return nil
	default:
		return fmt.Errorf("unsupported duration format: %v", value.Kind)
	}
}

// MarshalYAML implements the yaml.Marshaler interface for Duration.
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.Duration.String(), nil
}

// Config holds all sysquery configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Channel ChannelConfig `yaml:"channel"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig holds HTTP transport settings.
type ServerConfig struct {
	Listen          string   `yaml:"listen"`
	ReadTimeout     Duration `yaml:"read_timeout"`
	WriteTimeout    Duration `yaml:"write_timeout"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout"`
}

// ChannelConfig names the method channel the plugin registers on.
type ChannelConfig struct {
	Name string `yaml:"name"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Listen:          "127.0.0.1:8470",
			ReadTimeout:     Duration{5 * time.Second},
			WriteTimeout:    Duration{5 * time.Second},
			ShutdownTimeout: Duration{10 * time.Second},
		},
		Channel: ChannelConfig{
			Name: "player_plugin",
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
	}
}

// CLIOverrides holds values from command-line flags.
// Empty strings are treated as "not set" and skipped.
type CLIOverrides struct {
	Listen   string
	Channel  string
	LogLevel string
}

// Locate searches standard config file paths and returns the first one found.
// Returns empty string if no config file exists.
func Locate() string {
	for _, p := range configSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Load builds the configuration with the full precedence chain:
// CLI flags > env vars > YAML file > defaults.
//
// An empty path triggers auto-discovery via Locate(). A path that was given
// explicitly must exist.
func Load(cli CLIOverrides, path string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = Locate()
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config file %s: %w", path, err)
			}
		case explicit || !os.IsNotExist(err):
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if cli.Listen != "" {
		cfg.Server.Listen = cli.Listen
	}
	if cli.Channel != "" {
		cfg.Channel.Name = cli.Channel
	}
	if cli.LogLevel != "" {
		cfg.Logging.Level = cli.LogLevel
	}

	return cfg, nil
}

// WriteConfig serializes the config to a YAML file at the given path.
// Creates parent directories if needed.
func WriteConfig(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0640)
}

// applyEnvOverrides applies environment variable overrides to the configuration.
func applyEnvOverrides(cfg *Config) {
	if addr := os.Getenv("SQ_LISTEN_ADDR"); addr != "" {
		cfg.Server.Listen = addr
	}
	if name := os.Getenv("SQ_CHANNEL"); name != "" {
		cfg.Channel.Name = name
	}
	if level := os.Getenv("SQ_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Channel.Name == "" {
		return fmt.Errorf("channel name is required")
	}
	if _, _, err := net.SplitHostPort(c.Server.Listen); err != nil {
		return fmt.Errorf("invalid listen address %q: %w", c.Server.Listen, err)
	}
	for name, d := range map[string]Duration{
		"read_timeout":     c.Server.ReadTimeout,
		"write_timeout":    c.Server.WriteTimeout,
		"shutdown_timeout": c.Server.ShutdownTimeout,
	} {
		if d.Duration <= 0 {
			return fmt.Errorf("server.%s must be positive (got %s)", name, d.Duration)
		}
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Logging.Level)
	}
	return nil
}
