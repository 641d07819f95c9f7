// Package config provides configuration management for nwr.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - TaxDir, BatchSize, WithProgressBar
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use NWR_ prefix with underscores for nesting:
//
//	NWR_TAX_DIR=/data/nwr
//	NWR_BATCH_SIZE=100000
//	NWR_LOG_LEVEL=info
//	NWR_JOBS_NUMBER=3
package config

import (
	"runtime"
)

// Config represents the complete nwr configuration.
type Config struct {
	// TaxDir is the directory with NCBI dump files and the
	// taxonomy.sqlite store built from them.
	// Empty value means <home>/.nwr.
	TaxDir string `mapstructure:"tax_dir" yaml:"tax_dir"`

	// BatchSize is the number of dump rows inserted between
	// progress reports during ingestion.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`

	// WithProgressBar shows a progress bar during ingestion.
	WithProgressBar bool `mapstructure:"with_progress_bar" yaml:"with_progress_bar"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of dump files parsed concurrently.
	// It is capped by the number of dump files (three).
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, logs and the default
	// taxonomy directory reside. It must be set by CLI during init,
	// there is no default value for it.
	HomeDir string `yaml:"-"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		BatchSize:       100_000,
		WithProgressBar: true,
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: min(runtime.NumCPU(), 3),
	}

	return res
}

// TaxonomyDir returns the directory of the taxonomy store.
// Explicitly set TaxDir wins, otherwise the default location
// inside HomeDir is used.
func (c *Config) TaxonomyDir() string {
	if c.TaxDir != "" {
		return c.TaxDir
	}
	return DefaultTaxDir(c.HomeDir)
}
