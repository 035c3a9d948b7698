// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/gird/internal/adapters/config"
	_ "go.trai.ch/gird/internal/adapters/fs"
	_ "go.trai.ch/gird/internal/adapters/logger"
	_ "go.trai.ch/gird/internal/adapters/shell"
	_ "go.trai.ch/gird/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "go.trai.ch/gird/internal/app"
	_ "go.trai.ch/gird/internal/engine/scheduler"
)
