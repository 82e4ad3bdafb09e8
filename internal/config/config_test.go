package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"traceplot/internal/config"
)

func TestLoadDefaultsWhenConfigMissing(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	want := filepath.Join(tempHome, ".config", "traceplot", "config.toml")
	if resolved != want {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, want)
	}
	if cfg.Trace.Marker != "trace prescaler" {
		t.Fatalf("unexpected marker: %q", cfg.Trace.Marker)
	}
	if cfg.Trace.MetadataMargin != 30 {
		t.Fatalf("unexpected metadata margin: %d", cfg.Trace.MetadataMargin)
	}
	if cfg.Table.Samples != 1024 || cfg.Table.SamplingFreq != 4000 || cfg.Table.Columns != 3 {
		t.Fatalf("unexpected table defaults: %+v", cfg.Table)
	}
	if cfg.Table.Channels != -1 {
		t.Fatalf("expected channel auto-detection by default, got %d", cfg.Table.Channels)
	}
	if cfg.Table.OutputFilename != "tmp" {
		t.Fatalf("unexpected output filename: %q", cfg.Table.OutputFilename)
	}
	if cfg.KstBinary() != "kst2" {
		t.Fatalf("unexpected kst binary: %q", cfg.KstBinary())
	}
	if cfg.NativeRenderer() {
		t.Fatal("expected kst renderer by default")
	}
	if cfg.Plotter.Wait {
		t.Fatal("expected detached plotter by default")
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "traceplot.toml")

	type payload struct {
		Trace struct {
			Prefix   string `toml:"prefix"`
			Encoding string `toml:"encoding"`
		} `toml:"trace"`
		Table struct {
			Samples      int  `toml:"samples"`
			TimeIncluded bool `toml:"time_included"`
		} `toml:"table"`
		Plotter struct {
			Renderer string `toml:"renderer"`
			Wait     bool   `toml:"wait"`
		} `toml:"plotter"`
		Logging struct {
			Dir string `toml:"log_dir"`
		} `toml:"logging"`
	}
	custom := payload{}
	custom.Trace.Prefix = "BD: "
	custom.Trace.Encoding = "Latin1"
	custom.Table.Samples = 256
	custom.Table.TimeIncluded = true
	custom.Plotter.Renderer = "Native"
	custom.Plotter.Wait = true
	custom.Logging.Dir = filepath.Join(tempDir, "logs")
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Trace.Prefix != "BD: " {
		t.Fatalf("expected prefix to keep trailing space, got %q", cfg.Trace.Prefix)
	}
	if cfg.Trace.Encoding != "latin1" {
		t.Fatalf("expected lowercased encoding, got %q", cfg.Trace.Encoding)
	}
	if cfg.Table.Samples != 256 || !cfg.Table.TimeIncluded {
		t.Fatalf("unexpected table section: %+v", cfg.Table)
	}
	if !cfg.NativeRenderer() || !cfg.Plotter.Wait {
		t.Fatalf("unexpected plotter section: %+v", cfg.Plotter)
	}
	if cfg.Table.SamplingFreq != 4000 {
		t.Fatalf("expected untouched keys to keep defaults, got %d", cfg.Table.SamplingFreq)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	if info, err := os.Stat(cfg.Logging.Dir); err != nil || !info.IsDir() {
		t.Fatalf("expected log dir %q to exist: %v", cfg.Logging.Dir, err)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "traceplot.toml")
	if err := os.WriteFile(configPath, []byte("[table]\nsampels = 10\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected error for misspelled key")
	}
}

func TestEnvOverridesKstBinary(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TRACEPLOT_KST_BINARY", "/opt/kst/bin/kst2")

	cfg, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.KstBinary() != "/opt/kst/bin/kst2" {
		t.Fatalf("expected env override, got %q", cfg.KstBinary())
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(contents), `marker = "trace prescaler"`) {
		t.Fatalf("sample config missing marker: %s", contents)
	}

	var cfg config.Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	if cfg.Table.Samples != 1024 {
		t.Fatalf("expected sample to mirror defaults, got %d samples", cfg.Table.Samples)
	}

	loaded, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("load sample: %v", err)
	}
	if !exists || loaded.Plotter.Binary != "kst2" {
		t.Fatalf("unexpected sample load: exists=%v binary=%q", exists, loaded.Plotter.Binary)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"samples", func(c *config.Config) { c.Table.Samples = 0 }},
		{"sampling freq", func(c *config.Config) { c.Table.SamplingFreq = -1 }},
		{"columns", func(c *config.Config) { c.Table.Columns = 0 }},
		{"renderer", func(c *config.Config) { c.Plotter.Renderer = "gnuplot" }},
		{"encoding", func(c *config.Config) { c.Trace.Encoding = "klingon" }},
		{"log format", func(c *config.Config) { c.Logging.Format = "xml" }},
		{"log level", func(c *config.Config) { c.Logging.Level = "loud" }},
		{"marker", func(c *config.Config) { c.Trace.Marker = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatalf("expected validation error for %s", tc.name)
			}
		})
	}

	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
}
