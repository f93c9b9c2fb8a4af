package config

import "go.trai.ch/locksmith/internal/core/domain"

// File represents the structure of the locksmith.yaml configuration file.
// Unset fields keep their defaults.
type File struct {
	Manifest       *string `yaml:"manifest"`
	Lockfile       *string `yaml:"lockfile"`
	Depth          *int    `yaml:"depth"`
	WhyConcurrency *int    `yaml:"whyConcurrency"`
}

func (f *File) apply(cfg *domain.Config) *domain.Config {
	if f.Manifest != nil {
		cfg.Manifest = *f.Manifest
	}
	if f.Lockfile != nil {
		cfg.Lockfile = *f.Lockfile
	}
	if f.Depth != nil {
		cfg.Depth = *f.Depth
	}
	if f.WhyConcurrency != nil {
		cfg.WhyConcurrency = *f.WhyConcurrency
	}
	return cfg
}
