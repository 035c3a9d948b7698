// Package gird declares build rules and runs them as a command-line
// program. A girdfile is an ordinary Go main package that registers
// rules on a Registry and hands it to Main:
//
//	func main() {
//		reg := gird.NewRegistry()
//
//		compiled, _ := reg.Rule(gird.File("out.txt"),
//			gird.WithDeps(gird.Path("in.txt")),
//			gird.WithRecipe(gird.Command("cp in.txt out.txt")),
//			gird.WithHelp("Copy the input file."),
//		)
//
//		reg.Rule(gird.Phony("all"), gird.WithDeps(compiled))
//
//		gird.Main(reg)
//	}
//
// Running the program gives the usual subcommands: `run <target>`,
// `list`, and `version`.
package gird

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/gird/internal/app"
	"go.trai.ch/gird/internal/commands"
	"go.trai.ch/gird/internal/core/domain"
	_ "go.trai.ch/gird/internal/wiring"
)

// Aliases for the domain types a girdfile touches.
type (
	Registry   = domain.Registry
	Rule       = domain.Rule
	RuleOption = domain.RuleOption
	Target     = domain.Target
	Dependency = domain.Dependency
	Step       = domain.Step
)

// NewRegistry creates an empty rule registry.
func NewRegistry() *Registry {
	return domain.NewRegistry()
}

// File declares a file target identified by its path.
func File(path string) domain.FileTarget {
	return domain.FileTarget{Path: path}
}

// Phony declares a named target with no backing file. Phony targets are
// always considered out of date.
func Phony(name string) domain.PhonyTarget {
	return domain.PhonyTarget{Name: name}
}

// Rule option re-exports.
var (
	WithDeps     = domain.WithDeps
	WithRecipe   = domain.WithRecipe
	WithHelp     = domain.WithHelp
	WithParallel = domain.WithParallel
	Unlisted     = domain.Unlisted
)

// Main parses os.Args and executes the CLI over the given registry. It
// does not return.
func Main(reg *Registry) {
	os.Exit(MainArgs(reg, os.Args[1:]))
}

// MainArgs runs the CLI with explicit arguments and returns the process
// exit code: 0 on success or up to date, 1 on recipe or predicate
// failure and on question-mode outdated, 2 on graph or usage errors.
func MainArgs(reg *Registry, args []string) int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return 2
	}

	cli := commands.New(components, reg)
	cli.SetArgs(args)

	if err := cli.Execute(ctx); err != nil {
		return exitStatus(err)
	}
	return 0
}

func exitStatus(err error) int {
	// Question mode stays silent; the status is the answer.
	if errors.Is(err, domain.ErrTargetOutdated) {
		return 1
	}

	_, _ = fmt.Fprintf(os.Stderr, "%+v\n", err)

	switch {
	case errors.Is(err, domain.ErrUnknownTarget),
		errors.Is(err, domain.ErrCyclicDependency),
		errors.Is(err, domain.ErrDuplicateTarget),
		errors.Is(err, domain.ErrMissingDependency),
		errors.Is(err, domain.ErrRegistryFrozen):
		return 2
	default:
		return 1
	}
}
