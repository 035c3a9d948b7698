package domain_test

import (
	"errors"
	"testing"

	"go.trai.ch/gird/internal/core/domain"
)

func TestFlattenDeps_SplicesGroupsAndWrapsRules(t *testing.T) {
	reg := domain.NewRegistry()
	rule, err := reg.Rule(domain.FileTarget{Path: "lib.a"})
	if err != nil {
		t.Fatalf("declaration failed: %v", err)
	}

	pred := domain.Predicate("always", func() (bool, error) { return true, nil })
	group := domain.DependencyGroup{
		domain.PathDependency{Path: "one.c"},
		domain.DependencyGroup{domain.PathDependency{Path: "two.c"}},
	}

	flat, err := domain.FlattenDeps([]domain.Dependency{group, rule, pred})
	if err != nil {
		t.Fatalf("FlattenDeps failed: %v", err)
	}

	if len(flat) != 4 {
		t.Fatalf("expected 4 dependencies, got %d", len(flat))
	}
	if d, ok := flat[0].(domain.PathDependency); !ok || d.Path != "one.c" {
		t.Errorf("flat[0] = %#v, want path one.c", flat[0])
	}
	if d, ok := flat[1].(domain.PathDependency); !ok || d.Path != "two.c" {
		t.Errorf("flat[1] = %#v, want path two.c", flat[1])
	}
	if d, ok := flat[2].(domain.RuleDependency); !ok || d.Rule != rule {
		t.Errorf("flat[2] = %#v, want rule dependency", flat[2])
	}
	if d, ok := flat[3].(*domain.PredicateDependency); !ok || d != pred {
		t.Errorf("flat[3] = %#v, want the predicate", flat[3])
	}
}

func TestFlattenDeps_RejectsNil(t *testing.T) {
	if _, err := domain.FlattenDeps([]domain.Dependency{nil}); err == nil {
		t.Fatal("expected an error for nil dependency")
	}
}

func TestFlattenDeps_RejectsPredicateWithoutFunction(t *testing.T) {
	_, err := domain.FlattenDeps([]domain.Dependency{&domain.PredicateDependency{Name: "broken"}})
	if err == nil {
		t.Fatal("expected an error for a predicate without a function")
	}
}

func TestRegistry_Rule_FlattensDeclaredDeps(t *testing.T) {
	reg := domain.NewRegistry()
	dep, err := reg.Rule(domain.FileTarget{Path: "dep.txt"})
	if err != nil {
		t.Fatalf("declaration failed: %v", err)
	}

	rule, err := reg.Rule(domain.PhonyTarget{Name: "all"},
		domain.WithDeps(domain.DependencyGroup{dep, domain.PathDependency{Path: "in.txt"}}),
	)
	if err != nil {
		t.Fatalf("declaration failed: %v", err)
	}

	if len(rule.Deps) != 2 {
		t.Fatalf("expected 2 flattened deps, got %d", len(rule.Deps))
	}
	if _, ok := rule.Deps[0].(domain.RuleDependency); !ok {
		t.Errorf("deps[0] = %#v, want rule dependency", rule.Deps[0])
	}
}

func TestRegistry_Rule_RejectsBadDependency(t *testing.T) {
	reg := domain.NewRegistry()
	_, err := reg.Rule(domain.PhonyTarget{Name: "all"}, domain.WithDeps(nil))
	if err == nil {
		t.Fatal("expected an error for nil dependency")
	}
	if errors.Is(err, domain.ErrDuplicateTarget) {
		t.Fatal("wrong error class")
	}
}
