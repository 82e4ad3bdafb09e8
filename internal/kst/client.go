package kst

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"traceplot/internal/logging"
)

// Process is a started plotter.
type Process interface {
	PID() int
	Wait() error
	// Release detaches the process so it outlives traceplot.
	Release() error
}

// Executor abstracts process creation for testability.
type Executor interface {
	Start(ctx context.Context, binary string, args []string) (Process, error)
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// WithWait makes Launch block until kst2 exits and report its exit status.
func WithWait(wait bool) Option {
	return func(c *Client) {
		c.wait = wait
	}
}

// WithLogger sets the logger used for launch events.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Client wraps kst2 CLI interactions.
type Client struct {
	binary string
	wait   bool
	exec   Executor
	logger *slog.Logger
}

// Result reports what Launch started.
type Result struct {
	Binary string
	Args   []string
	PID    int
	// Waited is true when the process was waited for and exited cleanly.
	Waited bool
}

// New constructs a kst2 client.
func New(binary string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("kst2 binary required")
	}
	client := &Client{
		binary: binary,
		exec:   commandExecutor{stdout: os.Stdout, stderr: os.Stderr},
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Binary returns the configured kst2 command.
func (c *Client) Binary() string {
	return c.binary
}

// Launch starts kst2 on the request's table.
func (c *Client) Launch(ctx context.Context, req Request) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}
	args := BuildArgs(req)
	result := Result{Binary: c.binary, Args: args}

	startCtx := ctx
	if !c.wait {
		// A detached plotter must not be killed when traceplot's context ends.
		startCtx = context.WithoutCancel(ctx)
	}
	proc, err := c.exec.Start(startCtx, c.binary, args)
	if err != nil {
		return result, fmt.Errorf("start %s: %w", c.binary, err)
	}
	result.PID = proc.PID()
	c.logger.Debug("plotter started",
		logging.String(logging.FieldEventType, "plotter_started"),
		logging.String("binary", c.binary),
		logging.Int("pid", result.PID),
		logging.Any("args", args),
	)

	if !c.wait {
		if err := proc.Release(); err != nil {
			return result, fmt.Errorf("detach %s: %w", c.binary, err)
		}
		c.logger.Info("plotter detached",
			logging.String(logging.FieldEventType, "plotter_detached"),
			logging.Int("pid", result.PID),
		)
		return result, nil
	}

	if err := proc.Wait(); err != nil {
		c.logger.Error("plotter failed",
			logging.String(logging.FieldEventType, "plotter_failed"),
			logging.String(logging.FieldErrorHint, "run the logged kst2 command by hand to see its output"),
			logging.Int("pid", result.PID),
			logging.Err(err),
		)
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return result, fmt.Errorf("%s exited with status %d: %w", c.binary, exitErr.ExitCode(), err)
		}
		return result, fmt.Errorf("wait %s: %w", c.binary, err)
	}
	result.Waited = true
	c.logger.Info("plotter exited",
		logging.String(logging.FieldEventType, "plotter_exited"),
		logging.Int("pid", result.PID),
	)
	return result, nil
}

type commandExecutor struct {
	stdout io.Writer
	stderr io.Writer
}

func (e commandExecutor) Start(ctx context.Context, binary string, args []string) (Process, error) {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	cmd.Stdout = e.stdout
	cmd.Stderr = e.stderr
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return commandProcess{cmd: cmd}, nil
}

type commandProcess struct {
	cmd *exec.Cmd
}

func (p commandProcess) PID() int {
	return p.cmd.Process.Pid
}

func (p commandProcess) Wait() error {
	return p.cmd.Wait()
}

func (p commandProcess) Release() error {
	return p.cmd.Process.Release()
}
