package reconciler

import (
	"go.trai.ch/locksmith/internal/core/domain"
	"go.trai.ch/zerr"
)

// SyncLockfile rewrites the specifiers of one importer, and the workspace-wide
// overrides, from an already synchronized manifest. Only names already
// recorded in the lockfile are touched; resolved versions are left alone.
//
// Importer specifiers take the first match of dependencies, devDependencies,
// pnpm.overrides, resolutions. Lockfile overrides take pnpm.overrides, then
// resolutions.
func (r *Reconciler) SyncLockfile(lf *domain.Lockfile, importerID string, m *domain.Manifest) ([]domain.Change, error) {
	importer, ok := lf.Importer(importerID)
	if !ok {
		err := zerr.Wrap(domain.ErrImporterNotFound, "importer "+importerID)
		return nil, zerr.With(err, "importer", importerID)
	}

	changes := rewrite(importer.Specifiers, importerID, domain.SectionSpecifiers, m.Dependencies, m.DevDependencies, m.Overrides, m.Resolutions)
	changes = append(changes, rewrite(lf.Overrides, importerID, domain.SectionLockfileOverrides, m.Overrides, m.Resolutions)...)

	for _, change := range changes {
		r.logger.Debug("lockfile " + change.Project + " " + change.Name + " -> " + change.To)
	}
	return changes, nil
}

// rewrite replaces, in place, every entry of target that one of the sources
// knows about. Updates are collected before any is applied.
func rewrite(
	target *domain.DependencyMap,
	project string,
	section domain.Section,
	sources ...*domain.DependencyMap,
) []domain.Change {
	if target == nil {
		return nil
	}

	var changes []domain.Change
	for name, current := range target.All() {
		next, ok := lookupFirst(name, sources)
		if !ok || next == current {
			continue
		}
		changes = append(changes, domain.Change{
			Project: project,
			Section: section,
			Name:    name,
			From:    current,
			To:      next,
		})
	}

	for _, change := range changes {
		target.Set(change.Name, change.To)
	}
	return changes
}

func lookupFirst(name string, sources []*domain.DependencyMap) (string, bool) {
	for _, source := range sources {
		if v, ok := source.Get(name); ok {
			return v, true
		}
	}
	return "", false
}
