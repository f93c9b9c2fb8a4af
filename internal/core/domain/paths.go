package domain

import "path/filepath"

// RelativePath returns path relative to root. Both sides are compared through
// their resolved symlinks when both exist, since pnpm reports real paths.
func RelativePath(root, path string) (string, error) {
	realRoot, rootErr := filepath.EvalSymlinks(root)
	realPath, pathErr := filepath.EvalSymlinks(path)
	if rootErr == nil && pathErr == nil {
		return filepath.Rel(realRoot, realPath)
	}
	return filepath.Rel(root, path)
}
