// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/locksmith/internal/adapters/config"
	_ "go.trai.ch/locksmith/internal/adapters/fs"
	_ "go.trai.ch/locksmith/internal/adapters/lockfile"
	_ "go.trai.ch/locksmith/internal/adapters/logger"
	_ "go.trai.ch/locksmith/internal/adapters/manifest"
	_ "go.trai.ch/locksmith/internal/adapters/pnpm"
	// Register app and engine nodes.
	_ "go.trai.ch/locksmith/internal/app"
	_ "go.trai.ch/locksmith/internal/engine/reconciler"
)
