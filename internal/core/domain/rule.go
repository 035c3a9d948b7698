package domain

import "strings"

// Rule is the central entity of the engine: a target, its ordered
// dependencies, and the recipe that (re)produces the target. Rules are
// immutable once constructed and owned by their Registry for the duration
// of a process invocation. A rule may be referenced by any number of other
// rules as a RuleDependency; the graph resolver plans it exactly once.
type Rule struct {
	// Target is what the rule produces.
	Target Target

	// Deps is the flattened, ordered dependency list. Order is preserved
	// for display but does not constrain concurrency.
	Deps []Dependency

	// Recipe is the ordered sequence of steps run when the rule is stale.
	Recipe []Step

	// Parallel allows the rule to overlap with other independent parallel
	// rules during execution.
	Parallel bool

	// Help is the optional description shown by the list command.
	Help string

	// Listed controls whether the rule appears in the default listing.
	Listed bool
}

// RuleOption configures a rule at construction time.
type RuleOption func(*Rule)

// WithDeps declares the rule's dependencies. Nested groups and bare rules
// are flattened and wrapped by FlattenDeps.
func WithDeps(deps ...Dependency) RuleOption {
	return func(r *Rule) { r.Deps = append(r.Deps, deps...) }
}

// WithRecipe declares the rule's recipe steps.
func WithRecipe(steps ...Step) RuleOption {
	return func(r *Rule) { r.Recipe = append(r.Recipe, steps...) }
}

// WithHelp sets the rule's help text.
func WithHelp(help string) RuleOption {
	return func(r *Rule) { r.Help = help }
}

// WithParallel marks the rule as eligible for concurrent execution.
func WithParallel() RuleOption {
	return func(r *Rule) { r.Parallel = true }
}

// Unlisted hides the rule from the default listing.
func Unlisted() RuleOption {
	return func(r *Rule) { r.Listed = false }
}

// Name returns the identifier of the rule's target.
func (r *Rule) Name() string { return r.Target.ID() }

// ResolvedHelp returns the rule's help text. A rule with dependencies but
// no explicit help synthesizes one from its rule dependencies' help, one
// per line with a "- " marker. This keeps umbrella rules (a phony grouping
// other rules) self-documenting.
func (r *Rule) ResolvedHelp() string {
	if r.Help != "" {
		return r.Help
	}

	var lines []string
	for _, dep := range r.Deps {
		rd, ok := dep.(RuleDependency)
		if !ok {
			continue
		}
		if h := rd.Rule.ResolvedHelp(); h != "" {
			lines = append(lines, "- "+h)
		}
	}
	return strings.Join(lines, "\n")
}
