// Package logger builds slog loggers from configuration.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// Config holds the logger configuration.
type Config struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// NewLogger initializes a slog logger based on the provided configuration.
// A non-nil output overrides the configured destination, which is how tests
// capture log lines.
func NewLogger(cfg Config, output io.Writer) *slog.Logger {
	if output == nil {
		output = resolveOutput(cfg.Output)
	}

	level := new(slog.Level)
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		*level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(output, opts)
	} else {
		handler = slog.NewTextHandler(output, opts)
	}

	return slog.New(handler)
}

func resolveOutput(name string) io.Writer {
	switch name {
	case "stderr":
		return os.Stderr
	case "file":
		file, err := os.OpenFile("coach.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			slog.Warn("failed to open log file, falling back to stdout", "error", err)
			return os.Stdout
		}
		return file
	default:
		return os.Stdout
	}
}
