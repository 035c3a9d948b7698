package domain

import "go.trai.ch/zerr"

// Step is one element of a rule's recipe: either a shell command or a
// zero-argument callable. Steps of a recipe execute strictly in sequence
// regardless of the rule's parallel flag; the flag governs concurrency
// between independent rules, never within one recipe.
type Step interface {
	step()

	// Describe returns the dry-run representation of the step.
	Describe() string
}

// CommandStep is a shell-command step. The command is run through the
// system shell and blocks until the spawned process exits.
type CommandStep struct {
	Command string
}

func (CommandStep) step() {}

// Describe returns the command string.
func (s CommandStep) Describe() string { return s.Command }

// FuncStep is a callable step, invoked synchronously with no implicit
// timeout. A non-nil error fails the owning rule.
type FuncStep struct {
	// Name identifies the function in dry-run output and error reports.
	Name string

	Fn func() error
}

func (FuncStep) step() {}

// Describe returns the function name in call notation.
func (s FuncStep) Describe() string { return s.Name + "()" }

// NormalizeRecipe validates recipe input into an ordered list of steps.
func NormalizeRecipe(steps []Step) ([]Step, error) {
	out := make([]Step, 0, len(steps))
	for _, s := range steps {
		switch v := s.(type) {
		case nil:
			return nil, zerr.New("nil recipe step")
		case CommandStep:
			if v.Command == "" {
				return nil, zerr.New("empty command step")
			}
			out = append(out, v)
		case FuncStep:
			if v.Fn == nil {
				return nil, zerr.With(zerr.New("function step without function"), "step", v.Name)
			}
			out = append(out, v)
		default:
			return nil, zerr.New("unsupported recipe step variant")
		}
	}
	return out, nil
}
