// Package config resolves where the memory database lives and how the
// command line tool logs.
//
// Values are layered: built-in defaults, then an optional YAML file, then
// environment variables. Command line flags are applied last by the caller.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables that override file values.
const (
	EnvDBPath   = "AGENT_MEMORY_DB"
	EnvLogLevel = "AGENT_MEMORY_LOG_LEVEL"
	EnvConfig   = "AGENT_MEMORY_CONFIG"
)

// Config holds the settings of one invocation.
type Config struct {
	DBPath          string `yaml:"db_path"`
	LogLevel        string `yaml:"log_level"`
	DefaultRunLimit int    `yaml:"default_run_limit"`
}

// Default returns the configuration used when nothing else is set. The
// database sits in db/memory.db next to the directory holding the binary.
func Default() *Config {
	return &Config{
		DBPath:          DefaultDBPath(),
		LogLevel:        "info",
		DefaultRunLimit: 10,
	}
}

// DefaultDBPath returns <install dir>/../db/memory.db, falling back to
// ./db/memory.db when the executable path is unknown.
func DefaultDBPath() string {
	exe, err := os.Executable()
	if err != nil {
		return filepath.Join("db", "memory.db")
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), "..", "db", "memory.db")
}

// Load builds a Config from defaults, the YAML file at path (if any) and
// the environment. An empty path falls back to $AGENT_MEMORY_CONFIG. A
// missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.DBPath = getEnv(EnvDBPath, cfg.DBPath)
	cfg.LogLevel = getEnv(EnvLogLevel, cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

// Validate checks field values.
func (c *Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("db_path must not be empty")
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.DefaultRunLimit <= 0 {
		return fmt.Errorf("default_run_limit must be positive, got %d", c.DefaultRunLimit)
	}
	return nil
}

// SlogLevel returns the configured log level.
func (c *Config) SlogLevel() slog.Level {
	level, _ := ParseLevel(c.LogLevel)
	return level
}

// ParseLevel maps debug, info, warn and error onto slog levels.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
