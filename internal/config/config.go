// Package config loads cutout-mcp settings from a YAML file with an
// environment overlay.
//
// Resolution order, later entries winning:
//  1. DefaultConfig values
//  2. the YAML file named by CUTOUT_MCP_CONFIG (default "cutout-mcp.yaml")
//  3. CUTOUT_MCP_LOG_LEVEL and CUTOUT_MCP_LOG_FORMAT
//
// A .env file in the working directory, if present, is read before the
// environment is consulted. A missing YAML file is not an error.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables consulted by Load.
const (
	EnvConfigPath = "CUTOUT_MCP_CONFIG"
	EnvLogLevel   = "CUTOUT_MCP_LOG_LEVEL"
	EnvLogFormat  = "CUTOUT_MCP_LOG_FORMAT"

	DefaultPath = "cutout-mcp.yaml"
)

// LogConfig controls the diagnostic logger. Logs always go to stderr.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`

	// Format is "console" for human-readable output or "json".
	Format string `yaml:"format"`
}

// SegmentConfig holds defaults for the segmentation tool.
type SegmentConfig struct {
	// Iterations is the refinement round count used when a call omits it.
	Iterations int `yaml:"iterations"`
}

// SelectionConfig holds defaults for colour removal and the magic wand.
type SelectionConfig struct {
	Tolerance float64 `yaml:"tolerance"`
	Metric    string  `yaml:"metric"` // rgb or lab
	Feather   int     `yaml:"feather"`
}

// CompressConfig holds defaults for the compression tool.
type CompressConfig struct {
	Quality int    `yaml:"quality"`
	Format  string `yaml:"format"` // jpeg or png
}

// CacheConfig bounds the decoded image cache.
type CacheConfig struct {
	// MaxImages is the number of decoded images kept in memory. Zero
	// disables the bound.
	MaxImages int `yaml:"max_images"`
}

// Config is the complete server configuration.
type Config struct {
	Log       LogConfig       `yaml:"log"`
	Segment   SegmentConfig   `yaml:"segment"`
	Selection SelectionConfig `yaml:"selection"`
	Compress  CompressConfig  `yaml:"compress"`
	Cache     CacheConfig     `yaml:"cache"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Log.Level = "info"
	cfg.Log.Format = "console"

	cfg.Segment.Iterations = 3

	cfg.Selection.Tolerance = 32
	cfg.Selection.Metric = "rgb"
	cfg.Selection.Feather = 0

	cfg.Compress.Quality = 85
	cfg.Compress.Format = "jpeg"

	cfg.Cache.MaxImages = 32

	return cfg
}

// Load reads .env (if any), the YAML file and the environment overlay, then
// validates the result.
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	path := os.Getenv(EnvConfigPath)
	if path == "" {
		path = DefaultPath
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig loads configuration from a YAML file. Keys absent from the file
// keep their defaults. If the file doesn't exist, the default configuration
// is returned.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}

	return cfg, nil
}

// SaveConfig writes cfg to configPath as YAML, creating parent directories.
func SaveConfig(cfg *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.Log.Level = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		c.Log.Format = v
	}
}

// Validate rejects values the server cannot act on.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q (want debug, info, warn or error)", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("invalid log format %q (want console or json)", c.Log.Format)
	}
	if c.Segment.Iterations < 1 {
		return fmt.Errorf("segment.iterations must be at least 1, got %d", c.Segment.Iterations)
	}
	if c.Selection.Tolerance < 0 {
		return fmt.Errorf("selection.tolerance must not be negative, got %v", c.Selection.Tolerance)
	}
	switch strings.ToLower(c.Selection.Metric) {
	case "rgb", "lab":
	default:
		return fmt.Errorf("invalid selection metric %q (want rgb or lab)", c.Selection.Metric)
	}
	if c.Selection.Feather < 0 {
		return fmt.Errorf("selection.feather must not be negative, got %d", c.Selection.Feather)
	}
	if c.Compress.Quality < 1 || c.Compress.Quality > 100 {
		return fmt.Errorf("compress.quality must be in [1,100], got %d", c.Compress.Quality)
	}
	switch strings.ToLower(c.Compress.Format) {
	case "jpeg", "jpg", "png":
	default:
		return fmt.Errorf("invalid compress format %q (want jpeg or png)", c.Compress.Format)
	}
	if c.Cache.MaxImages < 0 {
		return fmt.Errorf("cache.max_images must not be negative, got %d", c.Cache.MaxImages)
	}
	return nil
}
