package domain_test

import (
	"testing"

	"go.trai.ch/gird/internal/core/domain"
)

func TestRule_ResolvedHelp_Explicit(t *testing.T) {
	reg := domain.NewRegistry()
	rule, err := reg.Rule(domain.PhonyTarget{Name: "build"}, domain.WithHelp("Build the thing."))
	if err != nil {
		t.Fatalf("declaration failed: %v", err)
	}
	if got := rule.ResolvedHelp(); got != "Build the thing." {
		t.Errorf("ResolvedHelp() = %q", got)
	}
}

func TestRule_ResolvedHelp_SynthesizedFromDeps(t *testing.T) {
	reg := domain.NewRegistry()

	compile, err := reg.Rule(domain.FileTarget{Path: "bin"}, domain.WithHelp("Compile the binary."))
	if err != nil {
		t.Fatalf("declaration failed: %v", err)
	}
	test, err := reg.Rule(domain.PhonyTarget{Name: "test"}, domain.WithHelp("Run the tests."))
	if err != nil {
		t.Fatalf("declaration failed: %v", err)
	}

	all, err := reg.Rule(domain.PhonyTarget{Name: "all"},
		domain.WithDeps(compile, test, domain.PathDependency{Path: "README"}),
	)
	if err != nil {
		t.Fatalf("declaration failed: %v", err)
	}

	want := "- Compile the binary.\n- Run the tests."
	if got := all.ResolvedHelp(); got != want {
		t.Errorf("ResolvedHelp() = %q, want %q", got, want)
	}
}

func TestRule_ResolvedHelp_EmptyWithoutSources(t *testing.T) {
	reg := domain.NewRegistry()
	rule, err := reg.Rule(domain.PhonyTarget{Name: "bare"},
		domain.WithDeps(domain.PathDependency{Path: "in.txt"}),
	)
	if err != nil {
		t.Fatalf("declaration failed: %v", err)
	}
	if got := rule.ResolvedHelp(); got != "" {
		t.Errorf("ResolvedHelp() = %q, want empty", got)
	}
}

func TestTarget_Identity(t *testing.T) {
	file := domain.FileTarget{Path: "a/b.txt"}
	phony := domain.PhonyTarget{Name: "all"}

	if file.ID() != "a/b.txt" || file.Phony() {
		t.Errorf("file target misbehaves: %q phony=%v", file.ID(), file.Phony())
	}
	if phony.ID() != "all" || !phony.Phony() {
		t.Errorf("phony target misbehaves: %q phony=%v", phony.ID(), phony.Phony())
	}
}
