package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeTrace()
	c.normalizeTable()
	c.normalizePlotter()
	return c.normalizeLogging()
}

// The prefix is a literal and keeps its surrounding whitespace.
func (c *Config) normalizeTrace() {
	c.Trace.Marker = strings.TrimSpace(c.Trace.Marker)
	if c.Trace.Marker == "" {
		c.Trace.Marker = defaultMarker
	}
	if c.Trace.MetadataMargin < 0 {
		c.Trace.MetadataMargin = defaultMetadataMargin
	}
	if c.Trace.BlockSize <= 0 {
		c.Trace.BlockSize = defaultBlockSize
	}
	c.Trace.Encoding = strings.ToLower(strings.TrimSpace(c.Trace.Encoding))
	if c.Trace.Encoding == "" {
		c.Trace.Encoding = defaultEncoding
	}
}

func (c *Config) normalizeTable() {
	c.Table.OutputFilename = strings.TrimSpace(c.Table.OutputFilename)
	if c.Table.OutputFilename == "" {
		c.Table.OutputFilename = defaultOutputFilename
	}
	if c.Table.Channels < 0 {
		c.Table.Channels = -1
	}
}

func (c *Config) normalizePlotter() {
	if value, ok := os.LookupEnv("TRACEPLOT_KST_BINARY"); ok && strings.TrimSpace(value) != "" {
		c.Plotter.Binary = strings.TrimSpace(value)
	}
	c.Plotter.Binary = strings.TrimSpace(c.Plotter.Binary)
	if c.Plotter.Binary == "" {
		c.Plotter.Binary = defaultKstBinary
	}
	c.Plotter.Renderer = strings.ToLower(strings.TrimSpace(c.Plotter.Renderer))
	if c.Plotter.Renderer == "" {
		c.Plotter.Renderer = RendererKst
	}
	if c.Plotter.PDFWidthIn <= 0 {
		c.Plotter.PDFWidthIn = defaultPDFWidthIn
	}
	if c.Plotter.PDFHeightIn <= 0 {
		c.Plotter.PDFHeightIn = defaultPDFHeightIn
	}
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Logging.Dir) == "" {
		c.Logging.Dir = ""
		return nil
	}
	var err error
	if c.Logging.Dir, err = expandPath(c.Logging.Dir); err != nil {
		return fmt.Errorf("logging.log_dir: %w", err)
	}
	return nil
}
