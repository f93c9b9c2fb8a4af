package ports

import "go.trai.ch/locksmith/internal/core/domain"

// ConfigLoader defines the interface for loading the tool configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration for the workspace root.
	// An empty path loads the optional default file; an explicit path must exist.
	Load(root, path string) (*domain.Config, error)
}
