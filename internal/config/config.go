package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Trace describes how the trace dump is located inside the device log.
type Trace struct {
	Marker         string `toml:"marker"`
	Prefix         string `toml:"prefix"`
	MetadataMargin int    `toml:"metadata_margin"`
	BlockSize      int    `toml:"block_size"`
	Encoding       string `toml:"encoding"`
}

// Table contains configuration for the emitted sample table.
type Table struct {
	Samples        int    `toml:"samples"`
	SamplingFreq   int    `toml:"sampling_freq"`
	Channels       int    `toml:"channels"`
	Columns        int    `toml:"columns"`
	OutputFilename string `toml:"output_filename"`
	TimeIncluded   bool   `toml:"time_included"`
}

// Plotter contains configuration for the plotting backend.
type Plotter struct {
	Binary      string  `toml:"binary"`
	Renderer    string  `toml:"renderer"`
	Wait        bool    `toml:"wait"`
	PDFWidthIn  float64 `toml:"pdf_width_in"`
	PDFHeightIn float64 `toml:"pdf_height_in"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	Dir    string `toml:"log_dir"`
}

// Config encapsulates all configuration values for traceplot.
//
// Configuration sections:
//   - Trace: marker, prefix and read window for locating the dump
//   - Table: sample count, sampling frequency and table output
//   - Plotter: kst2 binary, renderer choice and child process handling
//   - Logging: log format, level and optional log directory
type Config struct {
	Trace   Trace   `toml:"trace"`
	Table   Table   `toml:"table"`
	Plotter Plotter `toml:"plotter"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path of the per-user config file.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load reads, normalizes and validates the configuration. An empty path
// searches the per-user file and then traceplot.toml in the working
// directory. A missing file is not an error: defaults are returned, found is
// false, and resolved names the file that would have been read.
func Load(path string) (cfg *Config, resolved string, found bool, err error) {
	resolved, found, err = locate(path)
	if err != nil {
		return nil, "", false, err
	}

	c := Default()
	if found {
		if err := decodeFile(resolved, &c); err != nil {
			return nil, "", false, err
		}
	}
	if err := c.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := c.Validate(); err != nil {
		return nil, "", false, err
	}
	return &c, resolved, found, nil
}

func decodeFile(path string, into *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(into); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("parse config %s: %s", path, strict.String())
		}
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func locate(explicit string) (string, bool, error) {
	var candidates []string
	if explicit != "" {
		candidates = []string{explicit}
	} else {
		candidates = []string{defaultConfigPath, projectConfigName}
	}

	var first string
	for _, candidate := range candidates {
		path, err := expandPath(candidate)
		if err != nil {
			return "", false, err
		}
		if first == "" {
			first = path
		}
		info, err := os.Stat(path)
		switch {
		case err == nil && !info.IsDir():
			return path, true, nil
		case err == nil && explicit != "":
			return "", false, fmt.Errorf("config %s is a directory", path)
		case err != nil && !errors.Is(err, fs.ErrNotExist):
			return "", false, fmt.Errorf("stat config: %w", err)
		}
	}
	return first, false, nil
}

// EnsureDirectories creates the log directory when one is configured.
func (c *Config) EnsureDirectories() error {
	if c.Logging.Dir == "" {
		return nil
	}
	if err := os.MkdirAll(c.Logging.Dir, 0o755); err != nil {
		return fmt.Errorf("create log directory %q: %w", c.Logging.Dir, err)
	}
	return nil
}

// KstBinary returns the kst2 executable name or path.
func (c *Config) KstBinary() string {
	return c.Plotter.Binary
}

// NativeRenderer reports whether plots are rendered in-process instead of by kst2.
func (c *Config) NativeRenderer() bool {
	return c.Plotter.Renderer == RendererNative
}

// expandPath resolves a leading "~" or "~/" against the home directory and
// makes the result absolute. "~user" forms are left to filepath.Abs.
func expandPath(value string) (string, error) {
	if value == "" {
		return "", nil
	}
	if value == "~" || strings.HasPrefix(value, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		value = filepath.Join(home, strings.TrimPrefix(value, "~"))
	}
	abs, err := filepath.Abs(value)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", value, err)
	}
	return abs, nil
}

// ExpandPath exposes the path expansion used for config values to the CLI.
func ExpandPath(value string) (string, error) {
	return expandPath(value)
}

// CreateSample writes the commented sample configuration to path, creating
// its directory.
func CreateSample(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
