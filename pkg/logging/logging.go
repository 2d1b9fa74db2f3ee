// Package logging configures the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/wdm0006/salesjanitor/pkg/config"
)

// New builds a logger writing to w in the configured format and level. Every
// record carries the command name and a fresh run id.
func New(w io.Writer, cfg config.LoggingConfig, command string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}
	var h slog.Handler
	if strings.EqualFold(cfg.Format, "text") {
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}
	return slog.New(h).With("cmd", command, "run_id", uuid.NewString())
}

// Init builds the logger with New and installs it as the slog default.
func Init(w io.Writer, cfg config.LoggingConfig, command string) *slog.Logger {
	l := New(w, cfg, command)
	slog.SetDefault(l)
	return l
}

// ParseLevel maps debug, info, warn and error to slog levels; anything else is info.
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
