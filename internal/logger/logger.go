package logger

import (
	"log/slog"
	"os"
)

// New builds the application-wide structured logger.
// JSON output so log aggregation can index fields without parsing.
func New(service string, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})
	return slog.New(h).With("service", service)
}
