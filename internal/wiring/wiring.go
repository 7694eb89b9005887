// Package wiring registers all Graft nodes for the formatter.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/fmtpin/internal/adapters/logger"
	_ "go.trai.ch/fmtpin/internal/adapters/projectconfig"
	_ "go.trai.ch/fmtpin/internal/adapters/release"
	_ "go.trai.ch/fmtpin/internal/adapters/reporter"
	_ "go.trai.ch/fmtpin/internal/adapters/sandbox"
	_ "go.trai.ch/fmtpin/internal/adapters/settings"
	_ "go.trai.ch/fmtpin/internal/adapters/telemetry"
	_ "go.trai.ch/fmtpin/internal/adapters/telemetry/progrock"
	_ "go.trai.ch/fmtpin/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/fmtpin/internal/app"
	_ "go.trai.ch/fmtpin/internal/engine/configcache"
	_ "go.trai.ch/fmtpin/internal/engine/registry"
)
