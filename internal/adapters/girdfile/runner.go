package girdfile

import (
	"context"
	"errors"
	"io"
	"os/exec"

	"go.trai.ch/zerr"
)

// ErrExit carries the non-zero exit code of a girdfile run in its
// "exit_code" metadata.
var ErrExit = zerr.New("girdfile exited with failure")

// Runner spawns a girdfile through the Go toolchain and forwards the
// engine arguments to it.
type Runner struct {
	goBin string
}

// NewRunner creates a Runner using the go binary from PATH.
func NewRunner() *Runner {
	return &Runner{goBin: "go"}
}

// Run executes `go run <girdfile> <args...>` with the given standard
// streams. A non-zero exit of the girdfile surfaces as ErrExit with the
// code attached, so the caller can mirror it.
func (r *Runner) Run(ctx context.Context, girdfile string, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cmdArgs := append([]string{"run", girdfile}, args...)

	cmd := exec.CommandContext(ctx, r.goBin, cmdArgs...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return zerr.With(ErrExit, "exit_code", exitErr.ExitCode())
		}
		return zerr.Wrap(err, "run girdfile")
	}
	return nil
}

// ExitCode extracts the exit code attached to an ErrExit, defaulting to
// one for any other failure and zero for nil.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var zErr *zerr.Error
	if errors.As(err, &zErr) {
		if code, ok := zErr.Metadata()["exit_code"].(int); ok {
			return code
		}
	}
	return 1
}
