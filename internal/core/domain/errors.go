package domain

import "go.trai.ch/zerr"

var (
	// ErrUnknownTarget is returned when a requested target has neither a
	// rule nor an existing file.
	ErrUnknownTarget = zerr.New("unknown target")

	// ErrCyclicDependency is returned when the dependency graph contains a
	// cycle reachable from the requested target.
	ErrCyclicDependency = zerr.New("cyclic dependency")

	// ErrDuplicateTarget is returned when two rules are declared for the
	// same target.
	ErrDuplicateTarget = zerr.New("duplicate target")

	// ErrMissingDependency is returned when a path dependency does not
	// exist on disk and no rule produces it.
	ErrMissingDependency = zerr.New("missing dependency")

	// ErrRecipeFailure is returned when a shell-command step exits non-zero
	// or a callable step returns an error.
	ErrRecipeFailure = zerr.New("recipe failed")

	// ErrPredicateFailure is returned when a predicate dependency callable
	// returns an error during staleness evaluation.
	ErrPredicateFailure = zerr.New("predicate failed")

	// ErrRegistryFrozen is returned when a rule is declared after planning
	// has begun.
	ErrRegistryFrozen = zerr.New("registry is frozen")

	// ErrTargetOutdated is returned by question-mode runs when the target
	// would be rebuilt.
	ErrTargetOutdated = zerr.New("target is out of date")
)
