// Package domain contains the core domain model for the rule graph:
// targets, dependencies, recipes, rules, the registry and execution plans.
package domain

// Target identifies what a rule produces: either a file-system path or a
// named phony (non-file) action. Targets are comparable value types; within
// one Registry each distinct Target value maps to at most one Rule.
type Target interface {
	// ID returns the unique identifier of the target within a registry.
	ID() string

	// Phony reports whether the target has no corresponding file.
	Phony() bool
}

// FileTarget is a target backed by a file-system path.
//
// Paths are not canonicalized. Callers are responsible for a consistent
// path representation; "out.txt" and "./out.txt" are distinct targets.
type FileTarget struct {
	Path string
}

// ID returns the target path.
func (t FileTarget) ID() string { return t.Path }

// Phony returns false.
func (t FileTarget) Phony() bool { return false }

func (t FileTarget) String() string { return t.Path }

// PhonyTarget is a named action with no corresponding file. A rule with a
// phony target is always considered due for execution when planned.
type PhonyTarget struct {
	Name string
}

// ID returns the phony name.
func (t PhonyTarget) ID() string { return t.Name }

// Phony returns true.
func (t PhonyTarget) Phony() bool { return true }

func (t PhonyTarget) String() string { return t.Name }
