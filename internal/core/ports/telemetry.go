package ports

import (
	"context"
	"io"
)

// Telemetry reports per-rule execution progress.
//
//go:generate go run go.uber.org/mock/mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks
type Telemetry interface {
	// Record starts a vertex for the named rule.
	Record(ctx context.Context, name string) (context.Context, Vertex)

	// Close flushes and closes the recording session.
	Close() error
}

// Vertex represents one rule's execution in the progress stream.
type Vertex interface {
	// Stdout returns the writer for the rule's standard output.
	Stdout() io.Writer

	// Stderr returns the writer for the rule's error output.
	Stderr() io.Writer

	// Complete marks the vertex as finished, successfully when err is nil.
	Complete(err error)

	// Cached marks the vertex as skipped because the target was up to date.
	Cached()

	// Skipped marks the vertex as not run because a dependency failed.
	Skipped()
}
