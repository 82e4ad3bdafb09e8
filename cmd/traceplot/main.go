package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	cmd := newRootCommand()
	err := cmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		var silent silentError
		if !errors.Is(err, context.Canceled) && !errors.As(err, &silent) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// silentError fails the process after the command already reported the
// problem to the user.
type silentError struct {
	err error
}

func (e silentError) Error() string { return e.err.Error() }

func (e silentError) Unwrap() error { return e.err }
