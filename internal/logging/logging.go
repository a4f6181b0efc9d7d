// Package logging sets up the process-wide slog logger. Logs go to stderr
// so stdout stays reserved for claim results.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Init installs a text or JSON handler as the slog default. w defaults to
// os.Stderr. Any format other than "json" produces text.
func Init(level slog.Level, format string, w ...io.Writer) {
	var writer io.Writer = os.Stderr
	if len(w) > 0 && w[0] != nil {
		writer = w[0]
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(writer, opts)
	} else {
		handler = slog.NewTextHandler(writer, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// Setup parses level and format strings and calls Init.
func Setup(level, format string, w ...io.Writer) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}
	switch strings.ToLower(format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("unknown log format %q (want text or json)", format)
	}
	Init(lvl, format, w...)
	return nil
}

// ParseLevel maps debug|info|warn|error (case-insensitive) to a slog level.
// Empty means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// New returns a logger tagged with component=<name>.
func New(component string) *slog.Logger {
	return slog.Default().With(slog.String("component", component))
}
