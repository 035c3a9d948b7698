// Package main is the entry point for the gird launcher. It locates the
// project's girdfile and executes it with `go run`, forwarding arguments
// and the exit code.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.trai.ch/gird/cmd/gird/commands"
	"go.trai.ch/gird/internal/adapters/girdfile"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cli := commands.New()
	cli.SetArgs(args)

	if err := cli.Execute(ctx); err != nil {
		// The girdfile process already reported its own failure.
		if errors.Is(err, girdfile.ErrExit) {
			return girdfile.ExitCode(err)
		}
		_, _ = fmt.Fprintf(os.Stderr, "%+v\n", err)
		if errors.Is(err, girdfile.ErrNotFound) {
			return 2
		}
		return 1
	}
	return 0
}
