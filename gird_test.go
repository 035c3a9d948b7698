package gird_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/gird"
	"go.trai.ch/gird/internal/core/domain"
)

func TestBuilders(t *testing.T) {
	assert.Equal(t, domain.FileTarget{Path: "a.txt"}, gird.File("a.txt"))
	assert.Equal(t, domain.PhonyTarget{Name: "all"}, gird.Phony("all"))
	assert.Equal(t, domain.PathDependency{Path: "in.txt"}, gird.Path("in.txt"))
	assert.Equal(t, domain.CommandStep{Command: "make it so"}, gird.Command("make it so"))

	step := gird.Func("greet", func() error { return nil })
	assert.Equal(t, "greet()", step.Describe())

	pred := gird.Predicate("always", func() (bool, error) { return true, nil })
	assert.Equal(t, "always", pred.Name)

	group := gird.Group(gird.Path("a"), gird.Path("b"))
	assert.Len(t, group, 2)
}

func TestRegistryThroughFacade(t *testing.T) {
	reg := gird.NewRegistry()

	base, err := reg.Rule(gird.File("base.txt"),
		gird.WithRecipe(gird.Command("touch base.txt")),
		gird.WithHelp("Make the base."),
		gird.WithParallel(),
	)
	require.NoError(t, err)

	all, err := reg.Rule(gird.Phony("all"), gird.WithDeps(base), gird.Unlisted())
	require.NoError(t, err)

	assert.True(t, base.Parallel)
	assert.False(t, all.Listed)
	assert.Equal(t, "- Make the base.", all.ResolvedHelp())
}

func TestMainArgs_RunAndQuestion(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.txt")

	reg := gird.NewRegistry()
	_, err := reg.Rule(gird.File(out),
		gird.WithRecipe(gird.Command("echo done > "+out)),
	)
	require.NoError(t, err)

	assert.Equal(t, 1, gird.MainArgs(reg, []string{"run", out, "--question"}), "stale target answers nonzero")
	assert.Equal(t, 0, gird.MainArgs(reg, []string{"run", out}))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "done\n", string(data))

	assert.Equal(t, 0, gird.MainArgs(reg, []string{"run", out, "--question"}), "built target answers zero")
}

func TestMainArgs_UnknownTarget(t *testing.T) {
	reg := gird.NewRegistry()
	assert.Equal(t, 2, gird.MainArgs(reg, []string{"run", "ghost"}))
}
