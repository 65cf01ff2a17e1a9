// Package config provides configuration loading from environment variables.
package config

import (
	"errors"
	"fmt"

	"github.com/joeshaw/envdecode"

	"github.com/usestring/shapegen/internal/logging"
	"github.com/usestring/shapegen/pkg/codegen"
)

// Config holds all configuration for the CLI and the MCP server.
type Config struct {
	// Inference limits
	MaxSamples     int `env:"MAX_SAMPLES,default=1000"`
	MaxSampleBytes int `env:"MAX_SAMPLE_BYTES,default=4194304"`
	InferWorkers   int `env:"INFER_WORKERS,default=0"` // 0 = GOMAXPROCS

	// ShapeCacheMaxItems bounds the shapes kept for follow-up codegen calls.
	ShapeCacheMaxItems int `env:"SHAPE_CACHE_MAX_ITEMS,default=256"`

	DefaultOutputMode string `env:"DEFAULT_OUTPUT_MODE,default=go"`

	// Logging configuration
	LogLevel      string `env:"LOG_LEVEL,default=info"`
	LogFile       string `env:"LOG_FILE"` // empty = stderr only
	LogMaxSizeMB  int    `env:"LOG_MAX_SIZE_MB,default=10"`
	LogMaxBackups int    `env:"LOG_MAX_BACKUPS,default=5"`
	LogMaxAgeDays int    `env:"LOG_MAX_AGE_DAYS,default=28"`
	LogCompress   bool   `env:"LOG_COMPRESS,default=true"`
}

// Load reads configuration from environment variables. Unset variables take
// the defaults in the struct tags.
func Load() (*Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("decoding environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values no component can work with.
func (c *Config) Validate() error {
	if c.MaxSamples < 0 {
		return fmt.Errorf("MAX_SAMPLES must not be negative, got %d", c.MaxSamples)
	}
	if c.MaxSampleBytes <= 0 {
		return fmt.Errorf("MAX_SAMPLE_BYTES must be positive, got %d", c.MaxSampleBytes)
	}
	if c.ShapeCacheMaxItems <= 0 {
		return fmt.Errorf("SHAPE_CACHE_MAX_ITEMS must be positive, got %d", c.ShapeCacheMaxItems)
	}
	if _, err := codegen.ParseOutputMode(c.DefaultOutputMode); err != nil {
		return fmt.Errorf("DEFAULT_OUTPUT_MODE: %w", err)
	}
	return nil
}

// Logging returns the logging section of c.
func (c *Config) Logging() logging.Config {
	return logging.Config{
		Level:      c.LogLevel,
		FilePath:   c.LogFile,
		MaxSizeMB:  c.LogMaxSizeMB,
		MaxBackups: c.LogMaxBackups,
		MaxAgeDays: c.LogMaxAgeDays,
		Compress:   c.LogCompress,
	}
}
