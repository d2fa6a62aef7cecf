package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/vnykmshr/timerflow/pkg/common/errors"
)

// Output formats.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

const consoleTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// Config holds logging configuration.
type Config struct {
	// Level is the minimum level: trace, debug, info, warn, error. Default info.
	Level string `yaml:"level"`

	// Format is "json" (default) or "console".
	Format string `yaml:"format"`

	// Component, when set, is attached to every entry as the "component" field.
	Component string `yaml:"component"`
}

// New creates a logger writing to w (os.Stderr when nil).
func New(cfg Config, w io.Writer) (zerolog.Logger, error) {
	if w == nil {
		w = os.Stderr
	}

	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return Nop(), err
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", FormatJSON:
	case FormatConsole:
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: consoleTimeFormat}
	default:
		return Nop(), errors.NewValidationError("logging", "format", cfg.Format, "unknown log format").
			WithHint("use json or console")
	}

	ctx := zerolog.New(w).Level(level).With().Timestamp()
	if cfg.Component != "" {
		ctx = ctx.Str("component", cfg.Component)
	}
	return ctx.Logger(), nil
}

// DefaultComponent tags entries from loggers created by Default.
const DefaultComponent = "timerflow"

// Default returns an info-level JSON logger on os.Stderr. Components fall
// back to it when their configured logger is the zero value.
func Default() zerolog.Logger {
	logger, _ := New(Config{Component: DefaultComponent}, os.Stderr)
	return logger
}

// Nop returns a logger that never writes anything. Pass it to opt out of
// the Default logger.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}

// IsZero reports whether l is the zero zerolog.Logger, which has no writer
// and drops every event. Nop and loggers with a raised level are not zero.
func IsZero(l zerolog.Logger) bool {
	if l.GetLevel() != zerolog.DebugLevel {
		return false
	}
	e := l.Error()
	if e == nil {
		return true
	}
	e.Discard()
	return false
}

// OrDefault returns l, or Default when l is the zero value.
func OrDefault(l zerolog.Logger) zerolog.Logger {
	if IsZero(l) {
		return Default()
	}
	return l
}

// ParseLevel parses a level name. An empty string means info.
func ParseLevel(s string) (zerolog.Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	if s == "warning" {
		s = "warn"
	}
	level, err := zerolog.ParseLevel(s)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel, errors.NewValidationError("logging", "level", s, "unknown log level").
			WithHint("use trace, debug, info, warn or error")
	}
	return level, nil
}
