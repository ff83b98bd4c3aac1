package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/rs/zerolog"
)

// Supported output formats.
const (
	FormatText    = "text"
	FormatJSON    = "json"
	FormatConsole = "console"
)

// New builds a Logger writing to w. Formats "text" and "json" use slog
// handlers; "console" uses zerolog's colourised console writer.
func New(format, level string, w io.Writer) (Logger, error) {
	switch strings.ToLower(format) {
	case FormatText, FormatJSON:
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("log level %q: %w", level, err)
		}
		opts := &slog.HandlerOptions{Level: lvl}
		if strings.EqualFold(format, FormatJSON) {
			return NewSlogLogger(slog.New(slog.NewJSONHandler(w, opts))), nil
		}
		return NewSlogLogger(slog.New(slog.NewTextHandler(w, opts))), nil

	case FormatConsole:
		lvl, err := zerolog.ParseLevel(strings.ToLower(level))
		if err != nil {
			return nil, fmt.Errorf("log level %q: %w", level, err)
		}
		zl := zerolog.New(zerolog.ConsoleWriter{Out: w}).Level(lvl).With().Timestamp().Logger()
		return NewZerologLogger(zl), nil

	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}
