// Package app implements the application layer for gird.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"go.trai.ch/gird/internal/adapters/telemetry"
	"go.trai.ch/gird/internal/adapters/telemetry/progrock"
	"go.trai.ch/gird/internal/core/domain"
	"go.trai.ch/gird/internal/core/ports"
	"go.trai.ch/gird/internal/engine/planner"
	"go.trai.ch/gird/internal/engine/scheduler"
	"go.trai.ch/zerr"
)

// Phase tracks where an invocation is in its lifecycle. Rule
// registration happens in the girdfile program before the App is ever
// invoked, so the lifecycle starts at Idle with a populated registry
// and there is no registering phase.
type Phase string

const (
	// PhaseIdle means no invocation has started yet.
	PhaseIdle Phase = "Idle"
	// PhaseResolving means the dependency graph is being walked.
	PhaseResolving Phase = "Resolving"
	// PhaseEvaluating means staleness is being decided.
	PhaseEvaluating Phase = "Evaluating"
	// PhaseExecuting means recipes are running.
	PhaseExecuting Phase = "Executing"
	// PhaseDone means the last invocation finished successfully.
	PhaseDone Phase = "Done"
	// PhaseFailed means the last invocation returned an error.
	PhaseFailed Phase = "Failed"
)

// App drives a full invocation: resolve the plan for a target, annotate
// it with staleness, and hand it to the scheduler.
type App struct {
	settingsLoader ports.SettingsLoader
	stater         ports.FileStater
	scheduler      *scheduler.Scheduler
	logger         ports.Logger

	mu    sync.RWMutex
	phase Phase
}

// New creates a new App instance.
func New(loader ports.SettingsLoader, stater ports.FileStater, sched *scheduler.Scheduler, logger ports.Logger) *App {
	return &App{
		settingsLoader: loader,
		stater:         stater,
		scheduler:      sched,
		logger:         logger,
		phase:          PhaseIdle,
	}
}

// Phase returns the current lifecycle phase.
func (a *App) Phase() Phase {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.phase
}

func (a *App) setPhase(p Phase) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.phase = p
}

// RunOptions configure a single invocation.
type RunOptions struct {
	// DryRun prints recipe steps instead of executing them.
	DryRun bool

	// Question suppresses execution and reports staleness through the
	// returned error: nil when up to date, ErrTargetOutdated otherwise.
	Question bool

	// Parallelism bounds the worker pool. Zero falls back to settings.
	Parallelism int

	// OutputSync buffers each rule's output into one contiguous block.
	OutputSync bool

	// Verbose logs a planning summary even when settings leave it off.
	Verbose bool

	// Progress additionally records the run onto a progrock tape.
	Progress bool

	// Stdout and Stderr receive rule output. Nil defaults to the process
	// streams.
	Stdout io.Writer
	Stderr io.Writer
}

// Run builds the named target. The name is matched against declared
// targets first and falls back to a file path for leaf files.
func (a *App) Run(ctx context.Context, reg *domain.Registry, targetName string, opts RunOptions) (err error) {
	defer func() {
		if err != nil {
			a.setPhase(PhaseFailed)
		} else {
			a.setPhase(PhaseDone)
		}
	}()

	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	settings, err := a.settingsLoader.Load(".")
	if err != nil {
		return zerr.Wrap(err, "load settings")
	}
	parallelism := opts.Parallelism
	if parallelism <= 0 {
		parallelism = settings.Parallelism
	}
	outputSync := opts.OutputSync || settings.OutputSync

	reg.Freeze()

	a.setPhase(PhaseResolving)
	plan, err := planner.NewResolver(reg, a.stater).Resolve(a.target(reg, targetName))
	if err != nil {
		return err
	}

	a.setPhase(PhaseEvaluating)
	if err := planner.NewEvaluator(reg, a.stater).Annotate(plan); err != nil {
		return err
	}
	if opts.Verbose || settings.Verbose {
		a.logger.Info(fmt.Sprintf("planned %d rules for '%s', %d to run", plan.Len(), targetName, plan.Pending()))
	}

	if opts.Question {
		if plan.Outdated() {
			return zerr.With(domain.ErrTargetOutdated, "target", targetName)
		}
		return nil
	}

	if !plan.Outdated() {
		_, _ = fmt.Fprintf(stdout, "gird: '%s' is up to date.\n", targetName)
		return nil
	}

	tel := a.telemetry(stdout, stderr, outputSync, opts.Progress)
	defer func() { _ = tel.Close() }()

	a.setPhase(PhaseExecuting)
	return a.scheduler.Run(ctx, plan, scheduler.Options{
		Parallelism: parallelism,
		DryRun:      opts.DryRun,
		Telemetry:   tel,
	})
}

// target maps a CLI name onto a declared target, falling back to a file
// path so leaf files resolve without a rule.
func (a *App) target(reg *domain.Registry, name string) domain.Target {
	if rule, ok := reg.ByName(name); ok {
		return rule.Target
	}
	return domain.FileTarget{Path: name}
}

func (a *App) telemetry(stdout, stderr io.Writer, outputSync, progress bool) ports.Telemetry {
	console := telemetry.NewConsole(stdout, stderr, outputSync)
	if !progress {
		return console
	}
	return telemetry.NewMulti(console, progrock.New())
}

// ListOptions configure the rule listing.
type ListOptions struct {
	// All includes rules declared as unlisted.
	All bool

	// Question annotates outdated non-phony targets with a leading `*`.
	Question bool
}

// List writes the registry's rules in declaration order, one per line,
// with help text indented underneath. With Question set, each rule's
// plan is evaluated and outdated file targets get a `*` marker.
func (a *App) List(w io.Writer, reg *domain.Registry, opts ListOptions) error {
	reg.Freeze()

	// One evaluator for the whole listing, so shared predicates still
	// fire at most once.
	evaluator := planner.NewEvaluator(reg, a.stater)

	for _, rule := range reg.Rules() {
		if !rule.Listed && !opts.All {
			continue
		}

		namePrefix, helpPrefix := "", "    "
		if opts.Question {
			outdated, err := a.outdated(reg, evaluator, rule)
			if err != nil {
				return err
			}
			namePrefix, helpPrefix = "  ", "      "
			if outdated && !rule.Target.Phony() {
				namePrefix = "* "
			}
		}

		if _, err := fmt.Fprintln(w, namePrefix+rule.Name()); err != nil {
			return zerr.Wrap(err, "write listing")
		}
		if help := rule.ResolvedHelp(); help != "" {
			if err := writeIndented(w, helpPrefix, help); err != nil {
				return zerr.Wrap(err, "write listing")
			}
		}
	}
	return nil
}

func (a *App) outdated(reg *domain.Registry, evaluator *planner.Evaluator, rule *domain.Rule) (bool, error) {
	plan, err := planner.NewResolver(reg, a.stater).Resolve(rule.Target)
	if err != nil {
		return false, err
	}
	if err := evaluator.Annotate(plan); err != nil {
		return false, err
	}
	return plan.Outdated(), nil
}

func writeIndented(w io.Writer, prefix, help string) error {
	for _, line := range strings.Split(strings.TrimRight(help, "\n"), "\n") {
		if _, err := fmt.Fprintf(w, "%s%s\n", prefix, line); err != nil {
			return err
		}
	}
	return nil
}
