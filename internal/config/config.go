// Package config provides YAML-based configuration with environment
// variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all run settings. Everything has a default; a config
// file and environment variables only override.
type Config struct {
	// OffsetHours is the fixed timezone offset subtracted from
	// adjusted UTC to produce local time.
	OffsetHours int `yaml:"offset_hours"`

	// Extensions are the logger file suffixes scanned for, in scan
	// order.
	Extensions []string `yaml:"extensions"`

	// ExcludeMarker skips files whose name contains this substring
	// (already drift-adjusted derivatives).
	ExcludeMarker string `yaml:"exclude_marker"`

	// LogLevel controls stderr diagnostics: debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// CacheDir enables the msgpack parse cache when non-empty.
	CacheDir string `yaml:"cache_dir"`

	// DuckDBPath writes the final timeline into a DuckDB file when
	// non-empty.
	DuckDBPath string `yaml:"duckdb_path"`

	// ServeAddr starts the read-only HTTP API on this address after
	// processing when non-empty (e.g. "127.0.0.1:8089").
	ServeAddr string `yaml:"serve_addr"`
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() *Config {
	return &Config{
		OffsetHours:   4,
		Extensions:    []string{".deg", ".lux", ".light", ".sst"},
		ExcludeMarker: "driftadj",
		LogLevel:      "info",
	}
}

// Load reads configuration from the YAML file at path (optional: an
// empty path or missing file yields defaults) and applies environment
// overrides on top.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.applyEnvironmentOverrides()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvironmentOverrides allows environment variables to override
// config values, keyed DRIFTNORM_*.
func (c *Config) applyEnvironmentOverrides() {
	if v := os.Getenv("DRIFTNORM_OFFSET_HOURS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.OffsetHours = n
		}
	}
	if v := os.Getenv("DRIFTNORM_EXTENSIONS"); v != "" {
		parts := strings.Split(v, ",")
		exts := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				exts = append(exts, p)
			}
		}
		if len(exts) > 0 {
			c.Extensions = exts
		}
	}
	if v := os.Getenv("DRIFTNORM_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("DRIFTNORM_CACHE_DIR"); v != "" {
		c.CacheDir = v
	}
}

func (c *Config) validate() error {
	if len(c.Extensions) == 0 {
		return fmt.Errorf("config: at least one extension required")
	}
	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("config: extension %q must start with a dot", ext)
		}
	}
	return nil
}
