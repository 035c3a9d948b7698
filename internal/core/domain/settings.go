package domain

import "runtime"

// Settings are the per-project tool settings, loaded from an optional
// .gird.yaml. They configure the invocation, never the rule graph; rules
// are always declared programmatically.
type Settings struct {
	// Girdfile is the rule-declaration program run by the gird launcher.
	Girdfile string

	// Parallelism bounds the worker pool used for parallel rules.
	Parallelism int

	// OutputSync buffers each rule's output and prints it as one block
	// when the rule finishes, instead of interleaving.
	OutputSync bool

	// Verbose raises log verbosity.
	Verbose bool

	// WorkDir is the directory for engine scratch state such as content
	// stamps.
	WorkDir string
}

// DefaultSettings returns the settings used when no .gird.yaml exists.
func DefaultSettings() Settings {
	return Settings{
		Girdfile:    "girdfile.go",
		Parallelism: runtime.NumCPU(),
		WorkDir:     ".gird",
	}
}
