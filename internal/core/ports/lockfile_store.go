package ports

import "go.trai.ch/locksmith/internal/core/domain"

// LockfileStore reads and writes pnpm-lock.yaml documents.
//
//go:generate mockgen -source=lockfile_store.go -destination=mocks/mock_lockfile_store.go -package=mocks
type LockfileStore interface {
	// Load parses the lockfile at path.
	Load(path string) (*domain.Lockfile, error)

	// Save writes the specifiers back into the document at its path.
	// It is a no-op when the content is unchanged.
	Save(l *domain.Lockfile) error
}
