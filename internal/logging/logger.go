package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"traceplot/internal/config"
)

// LogFileName is the file written inside logging.log_dir.
const LogFileName = "traceplot.log"

// Options describes logger construction parameters.
type Options struct {
	Level  string
	Format string
	// OutputPaths lists "stderr" or file paths. Empty means stderr only.
	OutputPaths []string
	// SessionID tags every record; empty disables the tag.
	SessionID string
	// Stderr replaces os.Stderr for the "stderr" output path when set.
	Stderr io.Writer
}

// New constructs a slog logger using the provided options.
func New(opts Options) (*slog.Logger, error) {
	level := parseLevel(opts.Level)
	out, err := openOutputs(opts.OutputPaths, opts.Stderr)
	if err != nil {
		return nil, err
	}
	addSource := level <= slog.LevelDebug

	var handler slog.Handler
	switch format := strings.ToLower(strings.TrimSpace(opts.Format)); format {
	case "", "console":
		handler = newConsoleHandler(out, level, addSource)
	case "json":
		handler = newJSONHandler(out, level, addSource)
	default:
		return nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
	}

	logger := slog.New(handler)
	if id := strings.TrimSpace(opts.SessionID); id != "" {
		logger = logger.With(String(FieldSessionID, id))
	}
	return logger, nil
}

// NewFromConfig creates a logger from the [logging] config section, writing
// console output to stderr (os.Stderr when nil). The verbose flag lowers the
// level to debug regardless of the configured level. When a log directory is
// configured, records are appended to traceplot.log there as well and tagged
// with a fresh session ID.
func NewFromConfig(cfg *config.Config, verbose bool, stderr io.Writer) (*slog.Logger, error) {
	opts := Options{Level: "info", Stderr: stderr}
	if cfg != nil {
		opts.Level = cfg.Logging.Level
		opts.Format = cfg.Logging.Format
		if dir := cfg.Logging.Dir; dir != "" {
			opts.OutputPaths = []string{"stderr", filepath.Join(dir, LogFileName)}
			opts.SessionID = uuid.NewString()
		}
	}
	if verbose {
		opts.Level = "debug"
	}
	return New(opts)
}

func parseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return slog.LevelInfo
	}
	return l
}

func openOutputs(paths []string, stderr io.Writer) (io.Writer, error) {
	if stderr == nil {
		stderr = os.Stderr
	}
	var (
		writers []io.Writer
		errs    []error
	)
	seen := make(map[string]bool, len(paths))
	for _, path := range paths {
		path = strings.TrimSpace(path)
		if path == "" || seen[path] {
			continue
		}
		seen[path] = true
		if path == "stderr" {
			writers = append(writers, stderr)
			continue
		}
		file, err := appendFile(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		writers = append(writers, file)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	switch len(writers) {
	case 0:
		return stderr, nil
	case 1:
		return writers[0], nil
	}
	return io.MultiWriter(writers...), nil
}

func appendFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	return file, nil
}
