// Package logger builds the structured JSON logger shared by the batch
// runner and the admin API.
package logger

import (
	"log/slog"
	"os"
	"strings"

	"github.com/payflow-importer/internal/config"
)

// NewLogger creates the process-wide slog.Logger with the configured level.
// Source locations are only attached at debug level.
func NewLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Logging.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, opts))

	logger.Info("logger initialized", "app", cfg.Application.Name, "level", level)

	return logger
}
