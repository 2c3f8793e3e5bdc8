// Package logging builds the structured logger shared by every command.
package logging

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// New returns a tinted logger writing to stderr. verbose lowers the level to
// debug so per-stage pipeline events are shown.
func New(verbose bool) *slog.Logger {
	return NewWithWriter(os.Stderr, verbose, false)
}

// NewWithWriter returns a tinted logger writing to w. Colour is disabled
// when noColor is set or w is not stderr.
func NewWithWriter(w io.Writer, verbose, noColor bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		NoColor:    noColor || w != io.Writer(os.Stderr),
	}))
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
