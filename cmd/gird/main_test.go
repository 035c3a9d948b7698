package main

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/gird/cmd/gird/commands"
)

func TestRun_MissingGirdfile(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	code := run([]string{"run", "build"})
	assert.Equal(t, 2, code, "a missing girdfile is a usage error")
}

func TestVersionCommand(t *testing.T) {
	cli := commands.New()
	var out bytes.Buffer

	cli.SetArgs([]string{"version"})
	cliExecute(t, cli, &out)
	assert.Equal(t, "dev\n", out.String())
}

func cliExecute(t *testing.T, cli *commands.CLI, out *bytes.Buffer) {
	t.Helper()
	cli.SetOut(out)
	require.NoError(t, cli.Execute(context.Background()))
}
