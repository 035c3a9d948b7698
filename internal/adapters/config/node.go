package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/gird/internal/core/ports"
)

// NodeID is the unique identifier for the settings loader adapter node.
const NodeID graft.ID = "adapter.settings_loader"

func init() {
	graft.Register(graft.Node[ports.SettingsLoader]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.SettingsLoader, error) {
			return NewLoader(), nil
		},
	})
}
