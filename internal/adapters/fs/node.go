package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/gird/internal/core/ports"
)

// StaterNodeID is the unique identifier for the file stater adapter node.
const StaterNodeID graft.ID = "adapter.fs.stater"

func init() {
	graft.Register(graft.Node[ports.FileStater]{
		ID:        StaterNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.FileStater, error) {
			return NewStater(), nil
		},
	})
}
