package config_test

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/gnames/nwr/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirs(t *testing.T) {
	tempHome := t.TempDir()

	tests := []struct {
		msg string
		fn  func(string) string
		res string
	}{
		{
			msg: "config dir",
			fn:  config.ConfigDir,
			res: filepath.Join(tempHome, ".config", "nwr"),
		},
		{
			msg: "log dir",
			fn:  config.LogDir,
			res: filepath.Join(tempHome, ".local", "share", "nwr", "logs"),
		},
		{
			msg: "taxonomy dir",
			fn:  config.DefaultTaxDir,
			res: filepath.Join(tempHome, ".nwr"),
		},
		{
			msg: "config file",
			fn:  config.ConfigFilePath,
			res: filepath.Join(tempHome, ".config", "nwr", "config.yaml"),
		},
	}

	for _, v := range tests {
		res := v.fn(tempHome)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestNew(t *testing.T) {
	cfg := config.New()
	require.NotNil(t, cfg)

	assert.Equal(t, "", cfg.TaxDir)
	assert.Equal(t, 100_000, cfg.BatchSize)
	assert.True(t, cfg.WithProgressBar)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "file", cfg.Log.Destination)
	assert.Equal(t, min(runtime.NumCPU(), 3), cfg.JobsNumber)
	assert.Equal(t, "", cfg.HomeDir)
}

func TestTaxonomyDir(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{config.OptHomeDir("/home/user")})
	assert.Equal(t, filepath.Join("/home/user", ".nwr"), cfg.TaxonomyDir())

	cfg.Update([]config.Option{config.OptTaxDir("/data/ncbi")})
	assert.Equal(t, "/data/ncbi", cfg.TaxonomyDir())
	assert.Equal(t,
		filepath.Join("/data/ncbi", "taxonomy.sqlite"),
		config.StorePath(cfg.TaxonomyDir()),
	)
}

func TestOptionTaxDir(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "sets directory",
			input:    "/tmp/nwr",
			expected: "/tmp/nwr",
		},
		{
			name:     "trims whitespace",
			input:    "  /tmp/nwr  ",
			expected: "/tmp/nwr",
		},
		{
			name:     "ignores empty value",
			input:    "   ",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptTaxDir(tt.input)})
			assert.Equal(t, tt.expected, cfg.TaxDir)
		})
	}
}

func TestOptionLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "sets valid log level - debug",
			input:    "debug",
			expected: "debug",
		},
		{
			name:     "sets valid log level - warn",
			input:    "warn",
			expected: "warn",
		},
		{
			name:     "normalizes to lowercase",
			input:    "ERROR",
			expected: "error",
		},
		{
			name:     "ignores invalid value",
			input:    "trace",
			expected: "info",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			opt := config.OptLogLevel(tt.input)
			cfg.Update([]config.Option{opt})
			assert.Equal(t, tt.expected, cfg.Log.Level)
		})
	}
}

func TestOptionLogDestination(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"stderr", "stderr", "stderr"},
		{"stdout", "STDOUT", "stdout"},
		{"invalid", "syslog", "file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptLogDestination(tt.input)})
			assert.Equal(t, tt.expected, cfg.Log.Destination)
		})
	}
}

func TestOptionPositiveInts(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptBatchSize(0),
		config.OptJobsNumber(-2),
	})
	assert.Equal(t, 100_000, cfg.BatchSize)
	assert.Equal(t, min(runtime.NumCPU(), 3), cfg.JobsNumber)

	cfg.Update([]config.Option{
		config.OptBatchSize(500),
		config.OptJobsNumber(2),
	})
	assert.Equal(t, 500, cfg.BatchSize)
	assert.Equal(t, 2, cfg.JobsNumber)
}

func TestToOptions(t *testing.T) {
	t.Run("converts config to options correctly", func(t *testing.T) {
		original := config.New()
		opts := []config.Option{
			config.OptTaxDir("/data/taxonomy"),
			config.OptBatchSize(10000),
			config.OptWithProgressBar(false),
			config.OptLogLevel("debug"),
			config.OptLogFormat("text"),
			config.OptLogDestination("stdout"),
			config.OptJobsNumber(2),
		}
		original.Update(opts)

		convertedOpts := original.ToOptions()
		newCfg := config.New()
		newCfg.Update(convertedOpts)

		assert.Equal(t, original.TaxDir, newCfg.TaxDir)
		assert.Equal(t, original.BatchSize, newCfg.BatchSize)
		assert.Equal(t, original.WithProgressBar, newCfg.WithProgressBar)
		assert.Equal(t, original.Log.Level, newCfg.Log.Level)
		assert.Equal(t, original.Log.Format, newCfg.Log.Format)
		assert.Equal(t, original.Log.Destination, newCfg.Log.Destination)
		assert.Equal(t, original.JobsNumber, newCfg.JobsNumber)
	})

	t.Run("excludes runtime-only fields", func(t *testing.T) {
		cfg := config.New()
		cfg.Update([]config.Option{
			config.OptHomeDir("/custom/home"),
		})

		opts := cfg.ToOptions()
		newCfg := config.New()
		newCfg.Update(opts)

		assert.Equal(t, "", newCfg.HomeDir)
	})
}
