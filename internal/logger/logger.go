// Package logger builds the zerolog logger shared by every component.
//
// stdout carries the MCP protocol, so callers pass os.Stderr (or a test
// buffer) as the destination.
package logger

import (
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ironsheep/cutout-mcp/internal/config"
)

// New returns a timestamped logger writing to w at the configured level.
// Unknown levels fall back to info; format "json" writes raw JSON lines and
// anything else uses zerolog's console writer without colour.
func New(cfg config.LogConfig, w io.Writer) zerolog.Logger {
	out := w
	if !strings.EqualFold(cfg.Format, "json") {
		out = zerolog.ConsoleWriter{Out: w, NoColor: true}
	}

	return zerolog.New(out).
		Level(ParseLevel(cfg.Level)).
		With().
		Timestamp().
		Logger()
}

// ParseLevel maps a configured level name to a zerolog level.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Component returns a child logger tagged with the component name.
func Component(log zerolog.Logger, name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}
