package domain

import "go.trai.ch/zerr"

// Dependency is a reference from one rule to a prerequisite. It is a closed
// union over exactly three variants:
//
//   - PathDependency: a file whose modification time participates in
//     staleness comparison.
//   - RuleDependency: another rule, planned recursively.
//   - *PredicateDependency: a callable consulted at evaluation time.
//
// A *Rule and a DependencyGroup may also be passed wherever a Dependency is
// accepted; both are normalized away by FlattenDeps at construction time.
type Dependency interface {
	dependency()
}

// PathDependency references a file that must exist and whose modification
// time is compared against the dependent rule's target. If the path matches
// a registered FileTarget, the dependency behaves as a RuleDependency on
// that rule instead.
type PathDependency struct {
	Path string
}

func (PathDependency) dependency() {}

// RuleDependency references another rule. Building the referenced rule is
// itself recursively planned, and its staleness propagates to the
// dependent.
type RuleDependency struct {
	Rule *Rule
}

func (RuleDependency) dependency() {}

// PredicateDependency is a zero-argument callable invoked at
// staleness-evaluation time. A true result means "treat as stale",
// independent of timestamps. The callable must be side-effect free; it is
// invoked at most once per invocation even when shared between rules.
type PredicateDependency struct {
	// Name identifies the predicate in error reports and dry-run output.
	Name string

	// Fn reports whether the dependent rule must be rebuilt.
	Fn func() (bool, error)
}

func (*PredicateDependency) dependency() {}

// DependencyGroup is a nested sequence of dependencies. Groups exist only
// as construction-time input; FlattenDeps splices their elements into the
// surrounding list.
type DependencyGroup []Dependency

func (DependencyGroup) dependency() {}

// A *Rule used directly as a dependency is shorthand for RuleDependency on
// that rule; see FlattenDeps.
func (*Rule) dependency() {}

// Predicate builds a named predicate dependency.
func Predicate(name string, fn func() (bool, error)) *PredicateDependency {
	return &PredicateDependency{Name: name, Fn: fn}
}

// FlattenDeps normalizes construction-time dependency input into a flat
// ordered list of the three closed variants. Nested groups are spliced in
// place, bare rules are wrapped as RuleDependency. Order is preserved.
func FlattenDeps(deps []Dependency) ([]Dependency, error) {
	out := make([]Dependency, 0, len(deps))
	for _, d := range deps {
		switch v := d.(type) {
		case nil:
			return nil, zerr.New("nil dependency")
		case DependencyGroup:
			flat, err := FlattenDeps(v)
			if err != nil {
				return nil, err
			}
			out = append(out, flat...)
		case *Rule:
			out = append(out, RuleDependency{Rule: v})
		case PathDependency, RuleDependency:
			out = append(out, v)
		case *PredicateDependency:
			if v.Fn == nil {
				return nil, zerr.With(zerr.New("predicate dependency without function"), "predicate", v.Name)
			}
			out = append(out, v)
		default:
			return nil, zerr.New("unsupported dependency variant")
		}
	}
	return out, nil
}
