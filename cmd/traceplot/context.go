package main

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"traceplot/internal/config"
	"traceplot/internal/logging"
)

// noConfigAnnotation marks commands that must run even when the config file
// is missing or broken.
const noConfigAnnotation = "traceplot/no-config"

// commandContext carries the persistent flags and the lazily loaded config to
// every subcommand.
type commandContext struct {
	configPath string
	verbose    bool

	loadOnce func() (*config.Config, error)
}

func newCommandContext() *commandContext {
	c := &commandContext{}
	c.loadOnce = sync.OnceValues(func() (*config.Config, error) {
		cfg, _, _, err := config.Load(strings.TrimSpace(c.configPath))
		if err != nil {
			return nil, err
		}
		if err := cfg.EnsureDirectories(); err != nil {
			return nil, err
		}
		return cfg, nil
	})
	return c
}

// loadConfig reads the config once per invocation.
func (c *commandContext) loadConfig() (*config.Config, error) {
	return c.loadOnce()
}

// logger builds the run logger on the command's error stream.
func (c *commandContext) logger(cmd *cobra.Command) (*slog.Logger, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	return logging.NewFromConfig(cfg, c.verbose, cmd.ErrOrStderr())
}

func skipsConfig(cmd *cobra.Command) bool {
	for ; cmd != nil; cmd = cmd.Parent() {
		if _, ok := cmd.Annotations[noConfigAnnotation]; ok {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
