// Package ports defines the core interfaces for the engine.
package ports

import (
	"context"
	"io"

	"go.trai.ch/gird/internal/core/domain"
)

// ExecOptions carries per-invocation execution parameters for a recipe.
type ExecOptions struct {
	// DryRun prints each step's description instead of executing it.
	DryRun bool

	// Stdout and Stderr receive the output of recipe steps.
	Stdout io.Writer
	Stderr io.Writer
}

// Executor runs the recipe of a single rule: every step strictly in
// sequence, stopping at the first failure.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs the rule's recipe. A shell-command step spawns an
	// external process and blocks until it exits; a callable step is
	// invoked synchronously with no implicit timeout.
	Execute(ctx context.Context, rule *domain.Rule, opts ExecOptions) error
}
