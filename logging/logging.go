// Package logging builds the structured loggers used by the pipeline and CLI.
//
// Loggers are plain *slog.Logger values. Output is human-readable text when
// the destination is a terminal and JSON otherwise, so interactive runs stay
// readable while redirected runs stay machine-parseable. Algorithm packages
// never log; only the pipeline and the CLI hold a logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
)

// Format selects the handler.
type Format string

const (
	FormatAuto Format = "auto"
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Options configures New. The zero value logs at Info to stderr, format auto.
type Options struct {
	Writer io.Writer
	Level  slog.Level
	Format Format
}

// New returns a logger writing to opts.Writer.
func New(opts Options) *slog.Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	hopts := &slog.HandlerOptions{Level: opts.Level}

	if useText(w, opts.Format) {
		return slog.New(slog.NewTextHandler(w, hopts))
	}
	return slog.New(slog.NewJSONHandler(w, hopts))
}

func useText(w io.Writer, f Format) bool {
	switch f {
	case FormatText:
		return true
	case FormatJSON:
		return false
	}
	fd, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(fd.Fd()) || isatty.IsCygwinTerminal(fd.Fd())
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// ParseLevel accepts debug, info, warn or error (any case).
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("logging: unknown level %q", s)
	}
	return l, nil
}

// ParseFormat accepts auto, text or json (any case); empty means auto.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatAuto:
		return FormatAuto, nil
	case FormatText, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("logging: unknown format %q", s)
	}
}

// NewRunID returns a fresh run identifier.
func NewRunID() string { return uuid.NewString() }

// ForRun annotates log with the run identifier and strategy.
func ForRun(log *slog.Logger, runID, strategy string) *slog.Logger {
	return log.With(slog.String("run_id", runID), slog.String("strategy", strategy))
}
