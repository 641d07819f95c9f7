package iologger

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/nwr/pkg/config"
	"github.com/gnames/nwr/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in  string
		out slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"chatty", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.out, parseLevel(tt.in), tt.in)
	}
}

func TestInitFile(t *testing.T) {
	dir := t.TempDir()
	defer slog.SetDefault(slog.Default())

	cfg := config.LogConfig{Format: "text", Level: "info", Destination: "file"}
	require.NoError(t, Init(dir, cfg, false))
	slog.Info("first message")

	require.NoError(t, Init(dir, cfg, true))
	slog.Info("second message")

	bs, err := os.ReadFile(filepath.Join(dir, LogFile))
	require.NoError(t, err)
	assert.Contains(t, string(bs), "first message")
	assert.Contains(t, string(bs), "second message")

	require.NoError(t, Init(dir, cfg, false))
	bs, err = os.ReadFile(filepath.Join(dir, LogFile))
	require.NoError(t, err)
	assert.Empty(t, bs)
}

func TestInitError(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")
	cfg := config.LogConfig{Format: "json", Level: "info", Destination: "file"}
	err := Init(dir, cfg, false)
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.CreateLogFileError, gnErr.Code)
	assert.Equal(t, []any{filepath.Join(dir, LogFile), "truncate"}, gnErr.Vars)
	assert.ErrorIs(t, gnErr.Err, os.ErrNotExist)
}

func TestInitSettings(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	tests := []struct {
		msg string
		cfg config.LogConfig
		ok  bool
	}{
		{"stderr", config.LogConfig{Format: "tint", Level: "debug", Destination: "stderr"}, true},
		{"stdout", config.LogConfig{Format: "json", Level: "warn", Destination: "stdout"}, true},
		{"level", config.LogConfig{Format: "json", Level: "chatty", Destination: "stderr"}, false},
		{"format", config.LogConfig{Format: "xml", Level: "info", Destination: "stderr"}, false},
		{"destination", config.LogConfig{Format: "json", Level: "info", Destination: "syslog"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			err := Init(t.TempDir(), tt.cfg, false)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			gnErr, ok := err.(*gn.Error)
			require.True(t, ok)
			assert.Equal(t, errcode.LogSettingError, gnErr.Code)
			assert.Contains(t, gnErr.Vars, tt.msg)
		})
	}
}
