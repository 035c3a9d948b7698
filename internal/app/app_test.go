package app_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/gird/internal/adapters/config"
	"go.trai.ch/gird/internal/adapters/fs"
	"go.trai.ch/gird/internal/adapters/shell"
	"go.trai.ch/gird/internal/adapters/telemetry"
	"go.trai.ch/gird/internal/app"
	"go.trai.ch/gird/internal/core/domain"
	"go.trai.ch/gird/internal/core/ports/mocks"
	"go.trai.ch/gird/internal/engine/scheduler"
	"go.uber.org/mock/gomock"
)

func newApp(t *testing.T) *app.App {
	t.Helper()
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()
	logger.EXPECT().Error(gomock.Any()).AnyTimes()

	executor := shell.NewExecutor(logger)
	sched := scheduler.NewScheduler(executor, telemetry.NewNoOp(), logger)
	return app.New(config.NewLoader(), fs.NewStater(), sched, logger)
}

func TestApp_Run_CopyThenUpToDate(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.txt")
	out := filepath.Join(dir, "out.txt")
	require.NoError(t, os.WriteFile(in, []byte("payload"), 0o644))

	reg := domain.NewRegistry()
	_, err := reg.Rule(domain.FileTarget{Path: out},
		domain.WithDeps(domain.PathDependency{Path: in}),
		domain.WithRecipe(domain.CommandStep{Command: "cp " + in + " " + out}),
	)
	require.NoError(t, err)

	a := newApp(t)
	var stdout, stderr bytes.Buffer
	require.NoError(t, a.Run(context.Background(), reg, out, app.RunOptions{Stdout: &stdout, Stderr: &stderr}))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
	assert.Equal(t, app.PhaseDone, a.Phase())

	stdout.Reset()
	require.NoError(t, newApp(t).Run(context.Background(), reg, out, app.RunOptions{Stdout: &stdout, Stderr: &stderr}))
	assert.Contains(t, stdout.String(), "'"+out+"' is up to date.")
}

func TestApp_Run_PhonyUmbrella(t *testing.T) {
	dir := t.TempDir()
	left := filepath.Join(dir, "left.txt")
	right := filepath.Join(dir, "right.txt")

	reg := domain.NewRegistry()
	leftRule, err := reg.Rule(domain.FileTarget{Path: left},
		domain.WithRecipe(domain.CommandStep{Command: "echo l > " + left}),
		domain.WithParallel(),
	)
	require.NoError(t, err)
	rightRule, err := reg.Rule(domain.FileTarget{Path: right},
		domain.WithRecipe(domain.CommandStep{Command: "echo r > " + right}),
		domain.WithParallel(),
	)
	require.NoError(t, err)
	_, err = reg.Rule(domain.PhonyTarget{Name: "all"}, domain.WithDeps(leftRule, rightRule))
	require.NoError(t, err)

	var stdout bytes.Buffer
	require.NoError(t, newApp(t).Run(context.Background(), reg, "all", app.RunOptions{
		Parallelism: 2,
		Stdout:      &stdout,
		Stderr:      &stdout,
	}))

	assert.FileExists(t, left)
	assert.FileExists(t, right)
}

func TestApp_Run_Question(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.txt")
	out := filepath.Join(dir, "out.txt")
	require.NoError(t, os.WriteFile(in, []byte("payload"), 0o644))

	reg := domain.NewRegistry()
	_, err := reg.Rule(domain.FileTarget{Path: out},
		domain.WithDeps(domain.PathDependency{Path: in}),
		domain.WithRecipe(domain.CommandStep{Command: "cp " + in + " " + out}),
	)
	require.NoError(t, err)

	var stdout bytes.Buffer
	err = newApp(t).Run(context.Background(), reg, out, app.RunOptions{Question: true, Stdout: &stdout, Stderr: &stdout})
	assert.ErrorIs(t, err, domain.ErrTargetOutdated)
	assert.Empty(t, stdout.String(), "question mode must not print")
	assert.NoFileExists(t, out, "question mode must not execute")

	require.NoError(t, os.WriteFile(out, []byte("payload"), 0o644))
	assert.NoError(t, newApp(t).Run(context.Background(), reg, out, app.RunOptions{Question: true, Stdout: &stdout, Stderr: &stdout}))
}

func TestApp_Run_DryRun(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.txt")

	reg := domain.NewRegistry()
	_, err := reg.Rule(domain.FileTarget{Path: out},
		domain.WithRecipe(domain.CommandStep{Command: "touch " + out}),
	)
	require.NoError(t, err)

	var stdout bytes.Buffer
	require.NoError(t, newApp(t).Run(context.Background(), reg, out, app.RunOptions{DryRun: true, Stdout: &stdout, Stderr: &stdout}))

	assert.Contains(t, stdout.String(), "touch "+out)
	assert.NoFileExists(t, out)
}

func TestApp_Run_VerboseLogsPlan(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.txt")

	reg := domain.NewRegistry()
	_, err := reg.Rule(domain.FileTarget{Path: out},
		domain.WithRecipe(domain.CommandStep{Command: "touch " + out}),
	)
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	var logged []string
	logger.EXPECT().Info(gomock.Any()).Do(func(msg string) { logged = append(logged, msg) }).AnyTimes()
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()
	logger.EXPECT().Error(gomock.Any()).AnyTimes()

	executor := shell.NewExecutor(logger)
	sched := scheduler.NewScheduler(executor, telemetry.NewNoOp(), logger)
	a := app.New(config.NewLoader(), fs.NewStater(), sched, logger)

	var stdout bytes.Buffer
	require.NoError(t, a.Run(context.Background(), reg, out, app.RunOptions{Verbose: true, Stdout: &stdout, Stderr: &stdout}))

	require.NotEmpty(t, logged, "verbose option must log the planning summary")
	assert.Contains(t, logged[0], "planned 1 rules")
}

func TestApp_Run_UnknownTarget(t *testing.T) {
	reg := domain.NewRegistry()

	a := newApp(t)
	var stdout bytes.Buffer
	err := a.Run(context.Background(), reg, "ghost", app.RunOptions{Stdout: &stdout, Stderr: &stdout})
	assert.ErrorIs(t, err, domain.ErrUnknownTarget)
	assert.Equal(t, app.PhaseFailed, a.Phase())
}

func TestApp_Run_RecipeFailure(t *testing.T) {
	reg := domain.NewRegistry()
	_, err := reg.Rule(domain.PhonyTarget{Name: "broken"},
		domain.WithRecipe(domain.CommandStep{Command: "exit 4"}),
	)
	require.NoError(t, err)

	var stdout bytes.Buffer
	err = newApp(t).Run(context.Background(), reg, "broken", app.RunOptions{Stdout: &stdout, Stderr: &stdout})
	assert.ErrorIs(t, err, domain.ErrRecipeFailure)
}

func TestApp_List(t *testing.T) {
	reg := domain.NewRegistry()
	buildRule, err := reg.Rule(domain.PhonyTarget{Name: "build"}, domain.WithHelp("Build it."))
	require.NoError(t, err)
	_, err = reg.Rule(domain.PhonyTarget{Name: "secret"}, domain.Unlisted())
	require.NoError(t, err)
	_, err = reg.Rule(domain.PhonyTarget{Name: "all"}, domain.WithDeps(buildRule))
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, newApp(t).List(&out, reg, app.ListOptions{}))

	listing := out.String()
	assert.Contains(t, listing, "build\n    Build it.\n")
	assert.Contains(t, listing, "all\n    - Build it.\n")
	assert.NotContains(t, listing, "secret")

	out.Reset()
	require.NoError(t, newApp(t).List(&out, reg, app.ListOptions{All: true}))
	assert.Contains(t, out.String(), "secret")
}

func TestApp_List_QuestionMarksOutdated(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, "stale.txt")
	freshPath := filepath.Join(dir, "fresh.txt")
	require.NoError(t, os.WriteFile(freshPath, []byte("done"), 0o644))

	reg := domain.NewRegistry()
	_, err := reg.Rule(domain.FileTarget{Path: stale},
		domain.WithRecipe(domain.CommandStep{Command: "touch " + stale}),
	)
	require.NoError(t, err)
	_, err = reg.Rule(domain.FileTarget{Path: freshPath})
	require.NoError(t, err)
	_, err = reg.Rule(domain.PhonyTarget{Name: "all"})
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, newApp(t).List(&out, reg, app.ListOptions{Question: true}))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "* "+stale, lines[0])
	assert.Equal(t, "  "+freshPath, lines[1])
	assert.Equal(t, "  all", lines[2], "phony targets are never marked")
}
