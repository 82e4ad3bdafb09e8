package config

import (
	"errors"
	"fmt"

	"golang.org/x/text/encoding/htmlindex"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTrace(); err != nil {
		return err
	}
	if err := c.validateTable(); err != nil {
		return err
	}
	if err := c.validatePlotter(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateTrace() error {
	if c.Trace.Marker == "" {
		return errors.New("trace.marker must be set")
	}
	if c.Trace.BlockSize <= 0 {
		return errors.New("trace.block_size must be positive")
	}
	if _, err := htmlindex.Get(c.Trace.Encoding); err != nil {
		return fmt.Errorf("trace.encoding: unsupported value %q", c.Trace.Encoding)
	}
	return nil
}

func (c *Config) validateTable() error {
	if c.Table.Samples <= 0 {
		return errors.New("table.samples must be positive")
	}
	if c.Table.SamplingFreq <= 0 {
		return errors.New("table.sampling_freq must be positive")
	}
	if c.Table.Columns <= 0 {
		return errors.New("table.columns must be positive")
	}
	return nil
}

func (c *Config) validatePlotter() error {
	switch c.Plotter.Renderer {
	case RendererKst, RendererNative:
	default:
		return fmt.Errorf("plotter.renderer: unsupported value %q (want %q or %q)", c.Plotter.Renderer, RendererKst, RendererNative)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
