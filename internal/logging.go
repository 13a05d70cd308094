package internal

import (
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
)

// InitLogging installs a text slog handler on stdout as the default logger.
// The stdlib log package is routed through the same handler.
func InitLogging(level string) {
	InitLoggingTo(os.Stdout, level)
}

// InitLoggingTo is InitLogging with an explicit writer
func InitLoggingTo(w io.Writer, level string) {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)})
	slog.SetDefault(slog.New(h))
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
}

// ParseLevel maps a config level name to a slog level, defaulting to info
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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
