// Package scheduler executes an annotated plan: recipes run in dependency
// order, parallel-flagged rules may overlap on a bounded worker pool, and
// failures are contained to the failed rule's transitive dependents.
package scheduler

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"

	"go.trai.ch/gird/internal/core/domain"
	"go.trai.ch/gird/internal/core/ports"
	"go.trai.ch/zerr"
)

// RuleStatus represents the status of a planned rule.
type RuleStatus string

const (
	// StatusPending indicates the rule is waiting to be dispatched.
	StatusPending RuleStatus = "Pending"
	// StatusRunning indicates the rule's recipe is executing.
	StatusRunning RuleStatus = "Running"
	// StatusCompleted indicates the recipe finished successfully.
	StatusCompleted RuleStatus = "Completed"
	// StatusFailed indicates the recipe failed.
	StatusFailed RuleStatus = "Failed"
	// StatusUpToDate indicates the rule was not due and its recipe was skipped.
	StatusUpToDate RuleStatus = "UpToDate"
	// StatusSkipped indicates the rule was not run because a dependency failed.
	StatusSkipped RuleStatus = "Skipped"
)

// Scheduler runs annotated plans.
type Scheduler struct {
	executor  ports.Executor
	telemetry ports.Telemetry
	logger    ports.Logger

	mu     sync.RWMutex
	status map[*domain.Rule]RuleStatus
}

// NewScheduler creates a Scheduler with the given executor and telemetry.
func NewScheduler(executor ports.Executor, telemetry ports.Telemetry, logger ports.Logger) *Scheduler {
	return &Scheduler{
		executor:  executor,
		telemetry: telemetry,
		logger:    logger,
		status:    make(map[*domain.Rule]RuleStatus),
	}
}

// Options configure one Run invocation.
type Options struct {
	// Parallelism bounds the worker pool for parallel-flagged rules.
	// Values below one run everything sequentially.
	Parallelism int

	// DryRun prints recipe steps instead of executing them.
	DryRun bool

	// Telemetry overrides the scheduler's default telemetry for this run.
	Telemetry ports.Telemetry
}

// StatusOf returns the last observed status of the rule.
func (s *Scheduler) StatusOf(rule *domain.Rule) RuleStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if st, ok := s.status[rule]; ok {
		return st
	}
	return StatusPending
}

func (s *Scheduler) setStatus(rule *domain.Rule, st RuleStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status[rule] = st
}

// Run executes the plan. A rule never starts before every rule it
// transitively depends on has completed. Two rules may overlap only when
// both carry the parallel flag and neither depends on the other; a rule
// without the flag serializes against the entire plan. When a rule fails,
// its transitive dependents are skipped while unrelated rules still run,
// and Run returns the joined failures.
func (s *Scheduler) Run(ctx context.Context, plan *domain.Plan, opts Options) error {
	state := s.newRunState(plan, opts)

	var group errgroup.Group
	defer func() { _ = group.Wait() }()

	for state.remaining > 0 {
		progressed := state.step(ctx, &group)
		if state.remaining == 0 {
			break
		}
		if progressed {
			continue
		}

		if state.active > 0 {
			res := <-state.results
			state.finish(res.idx, res.err)
			state.active--
			continue
		}

		if ctx.Err() != nil {
			state.skipRemaining()
			state.errs = errors.Join(state.errs, ctx.Err())
			break
		}

		// No runnable entry, nothing in flight: the plan order is broken.
		return zerr.New("scheduler stalled with pending rules")
	}

	if err := group.Wait(); err != nil {
		state.errs = errors.Join(state.errs, err)
	}
	return state.errs
}

type entryState int

const (
	statePending entryState = iota
	stateRunning
	stateDone
	stateFailed
	stateSkipped
)

type result struct {
	idx int
	err error
}

type runState struct {
	s         *Scheduler
	telemetry ports.Telemetry
	entries   []*domain.PlanEntry
	deps      [][]int
	state     []entryState

	parallelism int
	dryRun      bool

	active    int
	remaining int
	results   chan result
	errs      error
}

func (s *Scheduler) newRunState(plan *domain.Plan, opts Options) *runState {
	entries := plan.Entries()
	parallelism := opts.Parallelism
	if parallelism < 1 {
		parallelism = 1
	}

	telemetry := opts.Telemetry
	if telemetry == nil {
		telemetry = s.telemetry
	}

	state := &runState{
		s:           s,
		telemetry:   telemetry,
		entries:     entries,
		deps:        dependencyIndexes(plan),
		state:       make([]entryState, len(entries)),
		parallelism: parallelism,
		dryRun:      opts.DryRun,
		remaining:   len(entries),
		results:     make(chan result, parallelism),
	}
	for _, e := range entries {
		s.setStatus(e.Rule, StatusPending)
	}
	return state
}

// dependencyIndexes maps each plan entry to the indexes of the entries it
// depends on, resolving path dependencies against planned file targets so
// propagation follows the same edges the resolver walked.
func dependencyIndexes(plan *domain.Plan) [][]int {
	entries := plan.Entries()
	byPath := make(map[string]int, len(entries))
	for i, e := range entries {
		if ft, ok := e.Rule.Target.(domain.FileTarget); ok {
			byPath[ft.Path] = i
		}
	}

	deps := make([][]int, len(entries))
	for i, e := range entries {
		for _, dep := range e.Rule.Deps {
			switch d := dep.(type) {
			case domain.RuleDependency:
				if idx, ok := plan.Position(d.Rule); ok {
					deps[i] = append(deps[i], idx)
				}
			case domain.PathDependency:
				if idx, ok := byPath[d.Path]; ok {
					deps[i] = append(deps[i], idx)
				}
			}
		}
	}
	return deps
}

// step makes one dispatch pass over the plan. It returns true when any
// entry changed state or was dispatched.
func (state *runState) step(ctx context.Context, group *errgroup.Group) bool {
	progressed := false

	for i, entry := range state.entries {
		if state.state[i] != statePending {
			continue
		}

		if failedDep, ok := state.blockedDep(i); ok {
			state.state[i] = stateSkipped
			state.remaining--
			state.s.setStatus(entry.Rule, StatusSkipped)
			_, vtx := state.telemetry.Record(ctx, entry.Rule.Name())
			vtx.Skipped()
			state.s.logger.Warn("skipping '" + entry.Rule.Name() + "': dependency '" + failedDep + "' failed")
			progressed = true
			continue
		}

		if !state.depsDone(i) || !state.barrierClear(i) {
			continue
		}

		if !entry.MustRun {
			state.state[i] = stateDone
			state.remaining--
			state.s.setStatus(entry.Rule, StatusUpToDate)
			_, vtx := state.telemetry.Record(ctx, entry.Rule.Name())
			vtx.Cached()
			progressed = true
			continue
		}

		if ctx.Err() != nil {
			continue
		}

		if entry.Rule.Parallel {
			if state.active < state.parallelism {
				state.dispatch(ctx, group, i)
				progressed = true
			}
			continue
		}

		// Sequential rules run inline once the plan has drained.
		if state.active == 0 {
			state.s.setStatus(entry.Rule, StatusRunning)
			err := state.runRule(ctx, entry.Rule)
			state.finish(i, err)
			progressed = true
		}
	}

	return progressed
}

func (state *runState) dispatch(ctx context.Context, group *errgroup.Group, i int) {
	rule := state.entries[i].Rule
	state.state[i] = stateRunning
	state.active++
	state.s.setStatus(rule, StatusRunning)

	group.Go(func() error {
		state.results <- result{idx: i, err: state.runRule(ctx, rule)}
		return nil
	})
}

func (state *runState) finish(i int, err error) {
	rule := state.entries[i].Rule
	state.remaining--

	if err != nil {
		state.state[i] = stateFailed
		state.s.setStatus(rule, StatusFailed)
		state.errs = errors.Join(state.errs, err)
		return
	}
	state.state[i] = stateDone
	state.s.setStatus(rule, StatusCompleted)
}

// blockedDep reports whether any dependency of entry i failed or was
// skipped, returning the first offending target name.
func (state *runState) blockedDep(i int) (string, bool) {
	for _, j := range state.deps[i] {
		if state.state[j] == stateFailed || state.state[j] == stateSkipped {
			return state.entries[j].Rule.Name(), true
		}
	}
	return "", false
}

func (state *runState) depsDone(i int) bool {
	for _, j := range state.deps[i] {
		if state.state[j] != stateDone {
			return false
		}
	}
	return true
}

// barrierClear enforces plan-order serialization for rules without the
// parallel flag: such a rule waits for every earlier entry, and every
// later entry waits for it.
func (state *runState) barrierClear(i int) bool {
	for j := range i {
		if terminal(state.state[j]) {
			continue
		}
		if !state.entries[j].Rule.Parallel || !state.entries[i].Rule.Parallel {
			return false
		}
	}
	return true
}

func terminal(st entryState) bool {
	return st == stateDone || st == stateFailed || st == stateSkipped
}

func (state *runState) skipRemaining() {
	for i, entry := range state.entries {
		if state.state[i] == statePending {
			state.state[i] = stateSkipped
			state.remaining--
			state.s.setStatus(entry.Rule, StatusSkipped)
		}
	}
}

func (state *runState) runRule(ctx context.Context, rule *domain.Rule) error {
	_, vtx := state.telemetry.Record(ctx, rule.Name())

	err := state.s.executor.Execute(ctx, rule, ports.ExecOptions{
		DryRun: state.dryRun,
		Stdout: vtx.Stdout(),
		Stderr: vtx.Stderr(),
	})
	vtx.Complete(err)

	if err != nil {
		return zerr.With(zerr.Wrap(err, "rule execution failed"), "target", rule.Name())
	}
	return nil
}
