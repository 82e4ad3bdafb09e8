package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLIEnv(t)

	out, _, err := runCLI(t, "config", "validate")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "defaults were used")
	requireContains(t, out, "Configuration valid")

	target := filepath.Join(env.dir, "traceplot.toml")
	out, _, err = runCLI(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected init to refuse overwriting without --overwrite")
	}
	if _, _, err := runCLI(t, "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}

	out, _, err = runCLI(t, "--config", target, "config", "validate")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Config path: "+target)
	requireContains(t, out, "Plotter: kst2 (renderer kst, wait no)")
}

func TestConfigFileDrivesDefaults(t *testing.T) {
	env := setupCLIEnv(t)
	configPath := filepath.Join(env.dir, "custom.toml")
	content := "[trace]\nprefix = \"BD: \"\n\n[table]\nsamples = 2\noutput_filename = \"fromcfg\"\n"
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, _, err := runCLI(t, "--config", configPath, "-f", env.logPath, "--no-launch"); err != nil {
		t.Fatalf("plot: %v", err)
	}
	rows := readLines(t, filepath.Join(env.dir, "fromcfg.txt"))
	if len(rows) != 2 || rows[0] != "0.0 10 0 5" {
		t.Fatalf("expected config prefix and sample count to apply, got %q", rows)
	}
}

func TestInvalidConfigFails(t *testing.T) {
	env := setupCLIEnv(t)
	configPath := filepath.Join(env.dir, "bad.toml")
	if err := os.WriteFile(configPath, []byte("[table]\nbogus = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := runCLI(t, "--config", configPath, "-f", env.logPath); err == nil {
		t.Fatal("expected unknown config key to fail")
	}
}
