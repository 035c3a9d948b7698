// Package planner implements build planning: resolving a requested target
// into a dependency-ordered plan and annotating it with staleness.
package planner

import (
	"strings"

	"go.trai.ch/gird/internal/core/domain"
	"go.trai.ch/gird/internal/core/ports"
	"go.trai.ch/zerr"
)

// Resolver walks the dependency graph from the registry and produces a
// deduplicated, dependency-ordered execution plan for a requested target.
type Resolver struct {
	reg    *domain.Registry
	stater ports.FileStater
}

// NewResolver creates a Resolver over the given frozen registry.
func NewResolver(reg *domain.Registry, stater ports.FileStater) *Resolver {
	return &Resolver{reg: reg, stater: stater}
}

// Resolve returns the execution plan for the target: each reachable rule
// exactly once, dependencies before dependents, the requested rule last.
//
// A FileTarget with no matching rule is treated as a pre-existing leaf
// file when it exists on disk, yielding an empty plan. Otherwise
// resolution fails with ErrUnknownTarget.
func (r *Resolver) Resolve(target domain.Target) (*domain.Plan, error) {
	root, ok := r.reg.Lookup(target)
	if !ok {
		if ft, isFile := target.(domain.FileTarget); isFile {
			_, exists, err := r.stater.ModTime(ft.Path)
			if err != nil {
				return nil, zerr.With(zerr.Wrap(err, "failed to stat target"), "target", ft.Path)
			}
			if exists {
				return domain.NewPlan(nil), nil
			}
		}
		return nil, zerr.With(domain.ErrUnknownTarget, "target", target.ID())
	}

	var (
		order    []*domain.Rule
		visiting = make(map[*domain.Rule]bool)
		done     = make(map[*domain.Rule]bool)
		path     []*domain.Rule
	)

	var visit func(rule *domain.Rule) error
	visit = func(rule *domain.Rule) error {
		visiting[rule] = true
		path = append(path, rule)

		for _, dep := range ruleDeps(r.reg, rule) {
			if done[dep] {
				continue
			}
			if visiting[dep] {
				return cycleError(path, dep)
			}
			if err := visit(dep); err != nil {
				return err
			}
		}

		visiting[rule] = false
		path = path[:len(path)-1]
		done[rule] = true
		order = append(order, rule)
		return nil
	}

	if err := visit(root); err != nil {
		return nil, err
	}

	return domain.NewPlan(order), nil
}

// ruleDeps returns the rules the given rule depends on, in declaration
// order. Path dependencies that name a registered file target resolve to
// the producing rule.
func ruleDeps(reg *domain.Registry, rule *domain.Rule) []*domain.Rule {
	var out []*domain.Rule
	for _, dep := range rule.Deps {
		switch d := dep.(type) {
		case domain.RuleDependency:
			out = append(out, d.Rule)
		case domain.PathDependency:
			if producer, ok := reg.LookupPath(d.Path); ok {
				out = append(out, producer)
			}
		}
	}
	return out
}

// cycleError builds an ErrCyclicDependency naming the participating
// targets in traversal order.
func cycleError(path []*domain.Rule, repeated *domain.Rule) error {
	start := 0
	for i, rule := range path {
		if rule == repeated {
			start = i
			break
		}
	}

	var b strings.Builder
	for _, rule := range path[start:] {
		b.WriteString(rule.Name())
		b.WriteString(" -> ")
	}
	b.WriteString(repeated.Name())
	return zerr.With(domain.ErrCyclicDependency, "cycle", b.String())
}
