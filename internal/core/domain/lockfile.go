package domain

import (
	"path/filepath"
	"strings"
)

// RootImporterID identifies the workspace root project in the lockfile importers.
const RootImporterID = "."

// Lockfile is the specifier view of a pnpm-lock.yaml document.
type Lockfile struct {
	// Path is the file the lockfile was read from.
	Path string

	// Version is the lockfileVersion field, kept verbatim (e.g., "5.4", "6.0", "9.0").
	Version string

	// Importers maps importer identifiers to their recorded specifiers.
	Importers map[string]*Importer

	// Overrides is the workspace-wide overrides section, nil when absent.
	Overrides *DependencyMap

	// Source holds the raw document bytes, used to preserve everything else on save.
	Source []byte
}

// Importer is one project entry of the lockfile.
type Importer struct {
	ID         string
	Specifiers *DependencyMap
}

// Importer returns the importer with the given identifier.
func (l *Lockfile) Importer(id string) (*Importer, bool) {
	if l == nil {
		return nil, false
	}
	imp, ok := l.Importers[id]
	return imp, ok
}

// ImporterID derives the lockfile importer identifier of a project from its
// directory relative to the workspace root. Empty paths and the root itself
// map to RootImporterID.
func ImporterID(root, projectPath string) string {
	if projectPath == "" || projectPath == "." {
		return RootImporterID
	}
	if root == "" {
		root = "."
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return filepath.ToSlash(filepath.Clean(projectPath))
	}
	absProject := projectPath
	if !filepath.IsAbs(absProject) {
		absProject = filepath.Join(absRoot, projectPath)
	}
	rel, err := RelativePath(absRoot, absProject)
	if err != nil {
		return filepath.ToSlash(filepath.Clean(projectPath))
	}
	rel = filepath.ToSlash(rel)
	if rel == "." || rel == "" {
		return RootImporterID
	}
	return strings.TrimPrefix(rel, "./")
}
