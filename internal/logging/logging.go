// Package logging builds the process slog logger and the HTTP access log.
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// ParseLevel maps debug/info/warn/error to a slog level, info by default.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New returns a JSON logger writing to out at the given level.
func New(out io.Writer, level string) *slog.Logger {
	return slog.New(NewColorHandler(out, &slog.HandlerOptions{Level: ParseLevel(level)}))
}
