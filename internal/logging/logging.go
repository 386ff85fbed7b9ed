// Package logging provides zerolog construction and context plumbing for
// ocrkit. All components obtain their logger through FromContext so that a
// single configured logger (level, format, optional file) flows through the
// whole command invocation.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config controls logger construction.
type Config struct {
	// Level is a zerolog level name ("debug", "info", "warn", "error").
	// Invalid or empty values fall back to "info".
	Level string

	// Format selects the output encoding: "console" (human-readable,
	// default) or "json".
	Format string

	// File, when non-empty, appends log output to the given path instead of
	// stderr. The parent directory is created if needed.
	File string
}

// Result carries the constructed logger plus file-output bookkeeping so the
// CLI can close the handle and tell the user where logs went.
type Result struct {
	Logger    zerolog.Logger
	UsingFile bool
	FilePath  string

	file *os.File
}

// Close releases the log file handle, if any. Safe to call when logging went
// to stderr.
func (r *Result) Close() error {
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// New builds a logger from cfg. File-open failures fall back to stderr rather
// than failing the command; the returned Result records whether the file is
// in use.
func New(cfg Config) Result {
	lvl, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		lvl = zerolog.InfoLevel
	}

	var out io.Writer = os.Stderr
	result := Result{}

	if cfg.File != "" {
		if mkErr := os.MkdirAll(filepath.Dir(cfg.File), 0o750); mkErr == nil {
			f, openErr := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
			if openErr == nil {
				out = f
				result.UsingFile = true
				result.FilePath = cfg.File
				result.file = f
			}
		}
	}

	if cfg.Format != "json" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	result.Logger = zerolog.New(out).Level(lvl).With().Timestamp().Logger()
	return result
}

// ComponentLogger returns a child logger tagged with a component name, e.g.
// "engine" or "cli".
func ComponentLogger(logger zerolog.Logger, component string) zerolog.Logger {
	return logger.With().Str("component", component).Logger()
}

// PrintLogPathMessage tells the user where file logging is going.
func PrintLogPathMessage(w io.Writer, path string) {
	_, _ = fmt.Fprintf(w, "Logging to %s\n", path)
}
