package config

import (
	"log/slog"
	"os"
	"strings"
)

const serviceName = "guestbook-api"

// NewLogger builds the process-wide slog.Logger from GO_ENV and LOG_LEVEL.
// Production gets the JSON handler for log shippers; everything else gets
// human-readable text. Every record carries the service name so guestbook
// lines are filterable in shared log streams.
func NewLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(os.Getenv("LOG_LEVEL"))}

	var handler slog.Handler
	if os.Getenv("GO_ENV") == "production" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(handler).With("service", serviceName)
}

// parseLogLevel maps LOG_LEVEL to a slog.Level; anything unrecognized,
// including empty, is info.
func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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
