// Package telemetry provides ports.Telemetry implementations: plain
// console output, a fan-out combinator and a no-op for tests. The progrock
// recorder lives in the nested progrock package.
package telemetry

import (
	"bytes"
	"context"
	"io"
	"sync"

	"go.trai.ch/gird/internal/core/ports"
)

var _ ports.Telemetry = (*Console)(nil)

// Console writes rule output directly to the given writers. With output
// sync enabled, each rule's output is buffered and printed as one block
// when the rule finishes, so parallel rules never interleave.
type Console struct {
	mu   sync.Mutex
	out  io.Writer
	err  io.Writer
	sync bool
}

// NewConsole creates a Console telemetry.
func NewConsole(out, err io.Writer, outputSync bool) *Console {
	return &Console{out: out, err: err, sync: outputSync}
}

// Record starts a vertex for the named rule.
func (c *Console) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	if !c.sync {
		return ctx, &consoleVertex{out: &lockedWriter{mu: &c.mu, w: c.out}, err: &lockedWriter{mu: &c.mu, w: c.err}}
	}

	v := &syncedVertex{console: c}
	return ctx, v
}

// Close implements ports.Telemetry.
func (c *Console) Close() error { return nil }

type consoleVertex struct {
	out io.Writer
	err io.Writer
}

func (v *consoleVertex) Stdout() io.Writer { return v.out }
func (v *consoleVertex) Stderr() io.Writer { return v.err }
func (v *consoleVertex) Complete(error)    {}
func (v *consoleVertex) Cached()           {}
func (v *consoleVertex) Skipped()          {}

// syncedVertex buffers output until the rule completes.
type syncedVertex struct {
	console *Console

	mu  sync.Mutex
	out bytes.Buffer
	err bytes.Buffer
}

func (v *syncedVertex) Stdout() io.Writer { return &lockedWriter{mu: &v.mu, w: &v.out} }
func (v *syncedVertex) Stderr() io.Writer { return &lockedWriter{mu: &v.mu, w: &v.err} }

func (v *syncedVertex) Complete(error) { v.flush() }
func (v *syncedVertex) Cached()        { v.flush() }
func (v *syncedVertex) Skipped()       { v.flush() }

func (v *syncedVertex) flush() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.console.mu.Lock()
	defer v.console.mu.Unlock()

	if v.out.Len() > 0 {
		_, _ = v.console.out.Write(v.out.Bytes())
		v.out.Reset()
	}
	if v.err.Len() > 0 {
		_, _ = v.console.err.Write(v.err.Bytes())
		v.err.Reset()
	}
}

type lockedWriter struct {
	mu *sync.Mutex
	w  io.Writer
}

func (w *lockedWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.w.Write(p)
}
