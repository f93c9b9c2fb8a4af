package ports

import (
	"context"

	"go.trai.ch/locksmith/internal/core/domain"
)

// ListOptions scopes a package listing.
type ListOptions struct {
	// Recursive lists every workspace project instead of the project in dir only.
	Recursive bool
	// Depth limits the listed tree depth. Nil omits the flag.
	Depth *int
}

// PackageManager queries the installed dependency tree.
//
//go:generate mockgen -source=package_manager.go -destination=mocks/mock_package_manager.go -package=mocks
type PackageManager interface {
	// List returns the installed projects of the workspace rooted at dir, in listing order.
	List(ctx context.Context, dir string, opts ListOptions) (*domain.Workspace, error)

	// Why returns the projects scoped to the occurrences of a single package.
	Why(ctx context.Context, dir, name string) (*domain.Workspace, error)
}
