package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SQ_LISTEN_ADDR", "")
	t.Setenv("SQ_CHANNEL", "")
	t.Setenv("SQ_LOG_LEVEL", "")
}

const fileConfig = `
server:
  listen: "0.0.0.0:9000"
  read_timeout: 2s
channel:
  name: "file_channel"
logging:
  level: warn
`

func TestLoad_CLIOverridesEverything(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, fileConfig)
	t.Setenv("SQ_LISTEN_ADDR", "127.0.0.1:9100")
	cli := CLIOverrides{Listen: "127.0.0.1:9200", Channel: "cli_channel"}

	cfg, err := Load(cli, path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Listen != "127.0.0.1:9200" {
		t.Errorf("Listen = %q, want CLI override", cfg.Server.Listen)
	}
	if cfg.Channel.Name != "cli_channel" {
		t.Errorf("Channel = %q, want CLI override", cfg.Channel.Name)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Level = %q, want file value", cfg.Logging.Level)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, fileConfig)
	t.Setenv("SQ_LISTEN_ADDR", "127.0.0.1:9100")
	t.Setenv("SQ_LOG_LEVEL", "debug")

	cfg, err := Load(CLIOverrides{}, path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Listen != "127.0.0.1:9100" {
		t.Errorf("Listen = %q, want env override", cfg.Server.Listen)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Level = %q, want env override", cfg.Logging.Level)
	}
	if cfg.Channel.Name != "file_channel" {
		t.Errorf("Channel = %q, want file value", cfg.Channel.Name)
	}
	if cfg.Server.ReadTimeout.Duration != 2*time.Second {
		t.Errorf("ReadTimeout = %v, want 2s from file", cfg.Server.ReadTimeout.Duration)
	}
	if cfg.Server.WriteTimeout.Duration != 5*time.Second {
		t.Errorf("WriteTimeout = %v, want 5s default", cfg.Server.WriteTimeout.Duration)
	}
}

func TestLoad_DefaultsWhenEmpty(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(CLIOverrides{}, writeFile(t, ""))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Channel.Name != "player_plugin" {
		t.Errorf("Channel = %q, want player_plugin default", cfg.Channel.Name)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(CLIOverrides{}, filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	clearEnv(t)
	_, err := Load(CLIOverrides{}, writeFile(t, "server:\n  read_timeout: soon\n"))
	if err == nil || !strings.Contains(err.Error(), "invalid duration") {
		t.Fatalf("err = %v, want invalid duration", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty channel", func(c *Config) { c.Channel.Name = "" }},
		{"bad listen", func(c *Config) { c.Server.Listen = "localhost" }},
		{"zero timeout", func(c *Config) { c.Server.ShutdownTimeout = Duration{} }},
		{"bad level", func(c *Config) { c.Logging.Level = "verbose" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestWriteConfig_RoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	cfg := DefaultConfig()
	cfg.Channel.Name = "written"
	cfg.Server.ShutdownTimeout = Duration{30 * time.Second}

	if err := WriteConfig(cfg, path); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(CLIOverrides{}, path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Channel.Name != "written" {
		t.Errorf("Channel = %q, want written", loaded.Channel.Name)
	}
	if loaded.Server.ShutdownTimeout.Duration != 30*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 30s", loaded.Server.ShutdownTimeout.Duration)
	}
}
