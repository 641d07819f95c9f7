// Package iologger sets up the default slog logger of nwr.
package iologger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gnames/nwr/pkg/config"
)

// LogFile is the name of the log file inside the log directory.
const LogFile = "nwr.log"

// Init sets the global slog logger according to cfg. With the "file"
// destination the log goes to logDir/nwr.log, which is appended to or
// truncated depending on the append flag.
func Init(logDir string, cfg config.LogConfig, append bool) error {
	if err := checkSettings(cfg); err != nil {
		return err
	}

	writer, err := logWriter(logDir, cfg.Destination, append)
	if err != nil {
		return err
	}

	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	var handler slog.Handler
	switch cfg.Format {
	case "text", "tint":
		handler = slog.NewTextHandler(writer, opts)
	default:
		handler = slog.NewJSONHandler(writer, opts)
	}

	slog.SetDefault(slog.New(handler))
	return nil
}

func logWriter(logDir, dest string, append bool) (io.Writer, error) {
	switch dest {
	case "stdout":
		return os.Stdout, nil
	case "stderr":
		return os.Stderr, nil
	case "file":
		logPath := filepath.Join(logDir, LogFile)
		flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
		if append {
			flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
		}
		file, err := os.OpenFile(logPath, flags, 0644)
		if err != nil {
			return nil, LogFileError(logPath, append, err)
		}
		return file, nil
	default:
		return nil, LogSettingError("destination", dest)
	}
}

func checkSettings(cfg config.LogConfig) error {
	switch cfg.Level {
	case "debug", "info", "warn", "error":
	default:
		return LogSettingError("level", cfg.Level)
	}
	switch cfg.Format {
	case "json", "text", "tint":
	default:
		return LogSettingError("format", cfg.Format)
	}
	return nil
}

// parseLevel converts string level to slog.Level.
func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
