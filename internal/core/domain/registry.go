package domain

import "go.trai.ch/zerr"

// Registry is the per-invocation collection of all declared rules, keyed
// by target and kept in declaration order for listing. It is populated
// synchronously while the rule-declaration program runs and frozen before
// planning begins; afterwards it is shared read-only.
//
// There is no implicit global registry. Each invocation (and each unit
// test) constructs its own.
type Registry struct {
	rules  map[Target]*Rule
	order  []*Rule
	frozen bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		rules: make(map[Target]*Rule),
	}
}

// Rule constructs a rule, normalizes its dependencies and recipe, and
// registers it under its target. Re-declaring a target fails with
// ErrDuplicateTarget; it indicates a programming error in the
// rule-declaration program and is never silently allowed.
func (reg *Registry) Rule(target Target, opts ...RuleOption) (*Rule, error) {
	if reg.frozen {
		return nil, zerr.With(ErrRegistryFrozen, "target", target.ID())
	}
	if _, exists := reg.rules[target]; exists {
		return nil, zerr.With(ErrDuplicateTarget, "target", target.ID())
	}

	r := &Rule{Target: target, Listed: true}
	for _, opt := range opts {
		opt(r)
	}

	deps, err := FlattenDeps(r.Deps)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "invalid dependencies"), "target", target.ID())
	}
	r.Deps = deps

	recipe, err := NormalizeRecipe(r.Recipe)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "invalid recipe"), "target", target.ID())
	}
	r.Recipe = recipe

	reg.rules[target] = r
	reg.order = append(reg.order, r)
	return r, nil
}

// Freeze marks the registry read-only. Rule declarations after Freeze fail.
func (reg *Registry) Freeze() { reg.frozen = true }

// Lookup returns the rule registered for the given target.
func (reg *Registry) Lookup(target Target) (*Rule, bool) {
	r, ok := reg.rules[target]
	return r, ok
}

// LookupPath returns the rule whose FileTarget matches the given path.
// Path dependencies that name another rule's target resolve through here,
// preserving sharing between rules.
func (reg *Registry) LookupPath(path string) (*Rule, bool) {
	return reg.Lookup(FileTarget{Path: path})
}

// ByName returns the rule whose target identifier equals name, searching
// in declaration order.
func (reg *Registry) ByName(name string) (*Rule, bool) {
	for _, r := range reg.order {
		if r.Name() == name {
			return r, true
		}
	}
	return nil, false
}

// Rules returns all rules in declaration order.
func (reg *Registry) Rules() []*Rule {
	out := make([]*Rule, len(reg.order))
	copy(out, reg.order)
	return out
}

// Len returns the number of registered rules.
func (reg *Registry) Len() int { return len(reg.order) }
