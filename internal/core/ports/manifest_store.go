package ports

import "go.trai.ch/locksmith/internal/core/domain"

// ManifestStore reads and writes package.json documents.
//
//go:generate mockgen -source=manifest_store.go -destination=mocks/mock_manifest_store.go -package=mocks
type ManifestStore interface {
	// Load parses the manifest at path.
	Load(path string) (*domain.Manifest, error)

	// Save writes the manifest back to its path, preserving unknown fields.
	// It is a no-op when the content is unchanged.
	Save(m *domain.Manifest) error
}
