package logger

import (
	"io"
	"os"
	"time"

	charmlog "github.com/charmbracelet/log"
)

// Config controls the JSON logger built by New.
type Config struct {
	Level    string
	Output   io.Writer
	Location *time.Location
}

// New returns a JSON logger writing one object per line with RFC3339Nano
// timestamps in cfg.Location.
func New(cfg Config) *charmlog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}

	return charmlog.NewWithOptions(out, charmlog.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339Nano,
		TimeFunction:    func(t time.Time) time.Time { return t.In(loc) },
		Level:           ParseLevel(cfg.Level),
		Formatter:       charmlog.JSONFormatter,
	})
}

// Discard returns a logger that drops everything; handy in tests.
func Discard() *charmlog.Logger {
	return New(Config{Output: io.Discard})
}

// ParseLevel maps a LOG_LEVEL value onto a charm level, defaulting to info.
func ParseLevel(s string) charmlog.Level {
	switch s {
	case "debug":
		return charmlog.DebugLevel
	case "warn":
		return charmlog.WarnLevel
	case "error":
		return charmlog.ErrorLevel
	default:
		return charmlog.InfoLevel
	}
}
