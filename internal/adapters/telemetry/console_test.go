package telemetry_test

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/gird/internal/adapters/telemetry"
)

func TestConsole_DirectWrites(t *testing.T) {
	var out, errOut bytes.Buffer
	console := telemetry.NewConsole(&out, &errOut, false)

	_, vtx := console.Record(context.Background(), "build")
	fmt.Fprint(vtx.Stdout(), "hello\n")
	fmt.Fprint(vtx.Stderr(), "warn\n")
	vtx.Complete(nil)

	assert.Equal(t, "hello\n", out.String())
	assert.Equal(t, "warn\n", errOut.String())
}

func TestConsole_OutputSyncBuffersUntilComplete(t *testing.T) {
	var out bytes.Buffer
	console := telemetry.NewConsole(&out, &out, true)

	_, first := console.Record(context.Background(), "first")
	_, second := console.Record(context.Background(), "second")

	fmt.Fprint(first.Stdout(), "f1\n")
	fmt.Fprint(second.Stdout(), "s1\n")
	fmt.Fprint(first.Stdout(), "f2\n")
	fmt.Fprint(second.Stdout(), "s2\n")

	assert.Empty(t, out.String(), "output must stay buffered until the rule finishes")

	second.Complete(nil)
	first.Complete(nil)

	assert.Equal(t, "s1\ns2\nf1\nf2\n", out.String(), "each rule's output must come out contiguously")
}

func TestConsole_OutputSyncFlushesOnCachedAndSkipped(t *testing.T) {
	var out bytes.Buffer
	console := telemetry.NewConsole(&out, &out, true)

	_, cached := console.Record(context.Background(), "cached")
	fmt.Fprint(cached.Stdout(), "from cache\n")
	cached.Cached()

	_, skipped := console.Record(context.Background(), "skipped")
	fmt.Fprint(skipped.Stderr(), "never ran\n")
	skipped.Skipped()

	assert.True(t, strings.Contains(out.String(), "from cache\n"))
	assert.True(t, strings.Contains(out.String(), "never ran\n"))
}

func TestMulti_FansOut(t *testing.T) {
	var a, b bytes.Buffer
	multi := telemetry.NewMulti(
		telemetry.NewConsole(&a, &a, false),
		telemetry.NewConsole(&b, &b, false),
	)

	_, vtx := multi.Record(context.Background(), "both")
	fmt.Fprint(vtx.Stdout(), "ping\n")
	vtx.Complete(nil)

	assert.Equal(t, "ping\n", a.String())
	assert.Equal(t, "ping\n", b.String())
	assert.NoError(t, multi.Close())
}
