package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"miso/internal/annotation"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, os.Args[1:], os.Stdout, os.Stderr, appDeps{})
	stop()
	os.Exit(code)
}

// execute runs one invocation and returns the process exit status.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer, deps appDeps) int {
	normalized := normalizeArgs(args)

	cmd := newRootCommand(deps)
	cmd.SetArgs(normalized)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	// Greeting precedes flag parsing and option validation.
	if target, _, err := cmd.Find(normalized); err != nil || target == cmd {
		writeGreeting(stdout, versionRequested(normalized))
	}

	if err := cmd.ExecuteContext(ctx); err != nil {
		switch {
		case errors.Is(err, annotation.ErrNoData):
			// "No genes." was already printed.
		case errors.Is(err, context.Canceled):
		default:
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}
