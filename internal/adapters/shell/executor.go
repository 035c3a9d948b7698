// Package shell provides the recipe executor adapter.
package shell

import (
	"context"
	"fmt"
	"io"
	"os/exec"

	"go.trai.ch/gird/internal/core/domain"
	"go.trai.ch/gird/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Executor = (*Executor)(nil)

// Executor implements ports.Executor using os/exec for command steps and
// direct invocation for function steps.
type Executor struct {
	logger ports.Logger

	// shell is the interpreter used for command steps.
	shell string
}

// NewExecutor creates a new Executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{
		logger: logger,
		shell:  "sh",
	}
}

// Execute runs the rule's recipe steps strictly in sequence. The first
// failing step stops the recipe; remaining steps are not run.
func (e *Executor) Execute(ctx context.Context, rule *domain.Rule, opts ports.ExecOptions) error {
	for _, step := range rule.Recipe {
		if opts.DryRun {
			_, _ = fmt.Fprintln(opts.Stdout, step.Describe())
			continue
		}

		if err := e.runStep(ctx, step, opts.Stdout, opts.Stderr); err != nil {
			return err
		}
	}
	return nil
}

func (e *Executor) runStep(ctx context.Context, step domain.Step, stdout, stderr io.Writer) error {
	switch s := step.(type) {
	case domain.CommandStep:
		return e.runCommand(ctx, s.Command, stdout, stderr)
	case domain.FuncStep:
		if err := s.Fn(); err != nil {
			failure := zerr.With(domain.ErrRecipeFailure, "step", s.Describe())
			return zerr.With(failure, "cause", err.Error())
		}
		return nil
	default:
		return zerr.New("unsupported recipe step variant")
	}
}

// runCommand spawns the command through the shell and blocks until it
// exits, forwarding output to the provided writers.
func (e *Executor) runCommand(ctx context.Context, command string, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, e.shell, "-c", command) //nolint:gosec // user provided recipe
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}

		failure := zerr.With(domain.ErrRecipeFailure, "command", command)
		return zerr.With(failure, "exit_code", exitCode)
	}
	return nil
}
