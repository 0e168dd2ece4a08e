// Package logging builds the zerolog loggers used across go-ods.
//
// Library code never writes to a global logger: every component takes a
// zerolog.Logger and defaults to zerolog.Nop().
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// EnvLogLevel overrides Options.Level when set.
const EnvLogLevel = "GOODS_LOG_LEVEL"

// Options selects level and output format.
type Options struct {
	// Level is one of trace, debug, info, warn, error, disabled.  Empty means
	// info.
	Level string
	// Console selects the human-readable console writer instead of JSON.
	Console bool
	// Out defaults to os.Stderr.
	Out io.Writer
}

// New returns a logger configured from opts and the environment.
func New(opts Options) zerolog.Logger {
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}
	if opts.Console {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	level := opts.Level
	if env := os.Getenv(EnvLogLevel); strings.TrimSpace(env) != "" {
		level = env
	}
	lvl, ok := ParseLevel(level)
	if !ok {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Str("lib", "go-ods").Logger()
}

// ParseLevel maps a level name to a zerolog level.  The second result is
// false for unknown names.
func ParseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return zerolog.InfoLevel, true
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "off", "none":
		return zerolog.Disabled, true
	default:
		return zerolog.InfoLevel, false
	}
}

// Component returns l tagged with a component field.
func Component(l zerolog.Logger, name string) zerolog.Logger {
	return l.With().Str("component", name).Logger()
}
