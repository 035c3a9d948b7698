package gird

import (
	"go.trai.ch/gird/internal/core/domain"
)

// Command declares a recipe step that runs a shell command.
func Command(command string) domain.CommandStep {
	return domain.CommandStep{Command: command}
}

// Func declares a recipe step that calls a Go function. The name shows
// up in dry runs and listings.
func Func(name string, fn func() error) domain.FuncStep {
	return domain.FuncStep{Name: name, Fn: fn}
}
