package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Config controls handler format and verbosity.
type Config struct {
	// Format is "text" or "json". Defaults to text.
	Format string
	// Level is "debug", "info", "warn", or "error". Defaults to info.
	Level string
}

// NewLogger returns a structured logger with sane defaults. MCP stdio
// transports own stdout, so logs always go to stderr.
func NewLogger(cfg Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func parseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
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
