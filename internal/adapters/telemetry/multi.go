package telemetry

import (
	"context"
	"errors"
	"io"

	"go.trai.ch/gird/internal/core/ports"
)

var _ ports.Telemetry = (*Multi)(nil)

// Multi fans every vertex out to several telemetries, e.g. the console
// and a progrock tape at the same time.
type Multi struct {
	sinks []ports.Telemetry
}

// NewMulti creates a Multi over the given telemetries.
func NewMulti(sinks ...ports.Telemetry) *Multi {
	return &Multi{sinks: sinks}
}

// Record starts a vertex on every sink.
func (m *Multi) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	vertices := make([]ports.Vertex, len(m.sinks))
	for i, sink := range m.sinks {
		ctx, vertices[i] = sink.Record(ctx, name)
	}
	return ctx, multiVertex{vertices: vertices}
}

// Close closes every sink, joining the errors.
func (m *Multi) Close() error {
	var errs error
	for _, sink := range m.sinks {
		errs = errors.Join(errs, sink.Close())
	}
	return errs
}

type multiVertex struct {
	vertices []ports.Vertex
}

func (v multiVertex) Stdout() io.Writer {
	writers := make([]io.Writer, len(v.vertices))
	for i, vtx := range v.vertices {
		writers[i] = vtx.Stdout()
	}
	return io.MultiWriter(writers...)
}

func (v multiVertex) Stderr() io.Writer {
	writers := make([]io.Writer, len(v.vertices))
	for i, vtx := range v.vertices {
		writers[i] = vtx.Stderr()
	}
	return io.MultiWriter(writers...)
}

func (v multiVertex) Complete(err error) {
	for _, vtx := range v.vertices {
		vtx.Complete(err)
	}
}

func (v multiVertex) Cached() {
	for _, vtx := range v.vertices {
		vtx.Cached()
	}
}

func (v multiVertex) Skipped() {
	for _, vtx := range v.vertices {
		vtx.Skipped()
	}
}
