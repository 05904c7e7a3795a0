// Package logging configures the process-wide structured logger.
package logging

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Setup builds a tinted stderr logger at the requested level and installs it
// as the slog default. Unknown level strings fall back to info.
func Setup(level string) *slog.Logger {
	h := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      ParseLevel(level),
		TimeFormat: time.TimeOnly,
		NoColor:    os.Getenv("NO_COLOR") != "",
	})
	log := slog.New(h)
	slog.SetDefault(log)
	return log
}

// ParseLevel maps a level name to its slog value.
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
