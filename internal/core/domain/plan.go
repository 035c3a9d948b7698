package domain

// PlanEntry is one rule in an execution plan, annotated by the staleness
// evaluator with whether its recipe must run.
type PlanEntry struct {
	Rule *Rule

	// MustRun is set during the Evaluating phase: true when the rule's
	// recipe has to execute, false when the target is up to date.
	MustRun bool
}

// Plan is the deduplicated, dependency-ordered sequence of rules to
// evaluate and execute for one requested target. Dependencies always
// precede dependents; the requested rule is last. A plan is built once per
// invocation and discarded after execution.
type Plan struct {
	entries []*PlanEntry
	index   map[*Rule]int
}

// NewPlan builds a plan over the given rules, which must already be in
// dependency-first order.
func NewPlan(rules []*Rule) *Plan {
	p := &Plan{
		entries: make([]*PlanEntry, 0, len(rules)),
		index:   make(map[*Rule]int, len(rules)),
	}
	for _, r := range rules {
		p.index[r] = len(p.entries)
		p.entries = append(p.entries, &PlanEntry{Rule: r})
	}
	return p
}

// Entries returns the plan entries in execution order.
func (p *Plan) Entries() []*PlanEntry { return p.entries }

// Len returns the number of planned rules.
func (p *Plan) Len() int { return len(p.entries) }

// Contains reports whether the rule is part of the plan.
func (p *Plan) Contains(r *Rule) bool {
	_, ok := p.index[r]
	return ok
}

// Lookup returns the plan entry for the given rule.
func (p *Plan) Lookup(r *Rule) (*PlanEntry, bool) {
	i, ok := p.index[r]
	if !ok {
		return nil, false
	}
	return p.entries[i], true
}

// Position returns the index of the rule within the plan.
func (p *Plan) Position(r *Rule) (int, bool) {
	i, ok := p.index[r]
	return i, ok
}

// Outdated reports whether any planned rule must run.
func (p *Plan) Outdated() bool {
	for _, e := range p.entries {
		if e.MustRun {
			return true
		}
	}
	return false
}

// Pending returns the number of rules marked for execution.
func (p *Plan) Pending() int {
	n := 0
	for _, e := range p.entries {
		if e.MustRun {
			n++
		}
	}
	return n
}
