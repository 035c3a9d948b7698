package planner

import (
	"time"

	"go.trai.ch/gird/internal/core/domain"
	"go.trai.ch/gird/internal/core/ports"
	"go.trai.ch/zerr"
)

// Evaluator annotates a plan with per-rule staleness decisions.
//
// Staleness is decided in plan order, so a rule's dependencies are always
// annotated before the rule itself. A rebuilt prerequisite forces its
// dependents to rebuild through the MustRun flag rather than by re-reading
// modification times after execution; this over-rebuilds in rare cases but
// never misses a rebuild and avoids post-execution stat races.
type Evaluator struct {
	reg    *domain.Registry
	stater ports.FileStater

	// Predicate results are cached so a predicate shared between rules is
	// invoked at most once per invocation.
	predicates map[*domain.PredicateDependency]bool
}

// NewEvaluator creates an Evaluator over the given frozen registry.
func NewEvaluator(reg *domain.Registry, stater ports.FileStater) *Evaluator {
	return &Evaluator{
		reg:        reg,
		stater:     stater,
		predicates: make(map[*domain.PredicateDependency]bool),
	}
}

// Annotate sets MustRun on every plan entry.
//
// Phony targets are always due. A file target must run when the file does
// not exist, a path dependency is newer, a rule dependency is itself due
// in this plan, or a predicate dependency fires. A rule with no
// dependencies and an existing file target is never stale.
func (e *Evaluator) Annotate(plan *domain.Plan) error {
	for _, entry := range plan.Entries() {
		mustRun, err := e.evaluate(plan, entry.Rule)
		if err != nil {
			return err
		}
		entry.MustRun = mustRun
	}
	return nil
}

func (e *Evaluator) evaluate(plan *domain.Plan, rule *domain.Rule) (bool, error) {
	if rule.Target.Phony() {
		return true, nil
	}

	target := rule.Target.(domain.FileTarget)
	targetTime, targetExists, err := e.stater.ModTime(target.Path)
	if err != nil {
		return false, zerr.With(zerr.Wrap(err, "failed to stat target"), "target", target.Path)
	}

	mustRun := !targetExists

	for _, dep := range rule.Deps {
		switch d := dep.(type) {
		case domain.RuleDependency:
			due, err := e.ruleDepDue(plan, d.Rule, targetTime, targetExists)
			if err != nil {
				return false, err
			}
			mustRun = mustRun || due

		case domain.PathDependency:
			if producer, ok := e.reg.LookupPath(d.Path); ok {
				due, err := e.ruleDepDue(plan, producer, targetTime, targetExists)
				if err != nil {
					return false, err
				}
				mustRun = mustRun || due
				continue
			}

			depTime, depExists, err := e.stater.ModTime(d.Path)
			if err != nil {
				return false, zerr.With(zerr.Wrap(err, "failed to stat dependency"), "path", d.Path)
			}
			if !depExists {
				err := zerr.With(domain.ErrMissingDependency, "path", d.Path)
				return false, zerr.With(err, "target", rule.Name())
			}
			if targetExists && depTime.After(targetTime) {
				mustRun = true
			}

		case *domain.PredicateDependency:
			fired, err := e.firePredicate(d)
			if err != nil {
				return false, zerr.With(err, "target", rule.Name())
			}
			mustRun = mustRun || fired
		}
	}

	return mustRun, nil
}

// ruleDepDue reports whether a rule dependency makes the dependent stale:
// either the dependency itself is due in this plan, or its target file is
// newer than the dependent's.
func (e *Evaluator) ruleDepDue(plan *domain.Plan, dep *domain.Rule, targetTime time.Time, targetExists bool) (bool, error) {
	depEntry, ok := plan.Lookup(dep)
	if !ok {
		return false, zerr.With(zerr.New("dependency missing from plan"), "dependency", dep.Name())
	}
	if depEntry.MustRun {
		return true, nil
	}

	depFile, isFile := dep.Target.(domain.FileTarget)
	if !isFile || !targetExists {
		return false, nil
	}

	depTime, depExists, err := e.stater.ModTime(depFile.Path)
	if err != nil {
		return false, zerr.With(zerr.Wrap(err, "failed to stat dependency"), "path", depFile.Path)
	}
	return depExists && depTime.After(targetTime), nil
}

func (e *Evaluator) firePredicate(pred *domain.PredicateDependency) (bool, error) {
	if fired, ok := e.predicates[pred]; ok {
		return fired, nil
	}

	fired, err := pred.Fn()
	if err != nil {
		wrapped := zerr.With(domain.ErrPredicateFailure, "predicate", pred.Name)
		return false, zerr.With(wrapped, "cause", err.Error())
	}
	e.predicates[pred] = fired
	return fired, nil
}
