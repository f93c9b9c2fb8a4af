package reconciler

import (
	"context"
	"fmt"
	"slices"

	"go.trai.ch/locksmith/internal/core/domain"
)

// ManifestOptions controls a single manifest synchronization.
type ManifestOptions struct {
	// Dir is the project directory the why queries run in.
	Dir string
	// WhyConcurrency bounds the prefetch of why queries. Values below 2 query lazily in order.
	WhyConcurrency int
}

// SyncManifest rewrites every present manifest section to the installed versions.
//
// Sections are processed in order: dependencies and devDependencies against
// the project's trees, then resolutions and pnpm.overrides against why
// lookups. Absent sections are skipped, as are tree sections for which the
// package manager listed no tree. The input manifest is not modified; on
// error no manifest is returned.
func (r *Reconciler) SyncManifest(
	ctx context.Context,
	m *domain.Manifest,
	project *domain.Project,
	opts ManifestOptions,
) (*domain.Manifest, []domain.Change, error) {
	out := m.Clone()
	lookup := NewWhyLookup(r.pm, opts.Dir, opts.WhyConcurrency)
	prefetched := opts.WhyConcurrency <= 1

	var changes []domain.Change
	for _, section := range domain.ManifestSections {
		deps := out.Section(section)
		if deps == nil {
			continue
		}

		var (
			synced  *domain.DependencyMap
			updated []domain.Change
			err     error
		)
		switch section {
		case domain.SectionDependencies, domain.SectionDevDependencies:
			tree := project.Tree(section)
			if tree == nil {
				r.logger.Debug("no installed " + string(section) + " tree, skipping section")
				continue
			}
			synced, updated, err = SyncAgainstTree(section, deps, tree)
		default:
			if !prefetched {
				prefetched = true
				if err := lookup.Prefetch(ctx, whyNames(out)); err != nil {
					return nil, nil, err
				}
			}
			synced, updated, err = SyncAgainstWhy(ctx, section, deps, lookup)
		}
		if err != nil {
			return nil, nil, err
		}

		out.SetSection(section, synced)
		for _, change := range updated {
			change.Project = m.Path
			if change.OutOfRange {
				r.logger.Warn(fmt.Sprintf("%s %s: %s does not satisfy %s", section, change.Name, change.To, change.From))
			}
			changes = append(changes, change)
		}
	}

	return out, changes, nil
}

// whyNames lists the unique names of the why-backed sections in manifest order.
func whyNames(m *domain.Manifest) []string {
	var names []string
	for _, section := range []domain.Section{domain.SectionResolutions, domain.SectionOverrides} {
		for name := range m.Section(section).All() {
			if !slices.Contains(names, name) {
				names = append(names, name)
			}
		}
	}
	return names
}

// SyncAgainstTree replaces every value in deps with the resolved version of
// the matching package in finder. Order is preserved. The first missing name
// fails the whole section.
func SyncAgainstTree(
	section domain.Section,
	deps *domain.DependencyMap,
	finder domain.PackageFinder,
) (*domain.DependencyMap, []domain.Change, error) {
	return syncMap(section, deps, func(name string) (*domain.DependencyNode, error) {
		node, ok := finder.FindPackage(name)
		if !ok {
			return nil, notFound(domain.ErrDependencyNotFound, section, name, finder)
		}
		return node, nil
	})
}

// SyncAgainstWhy replaces every value in deps with the resolved version found
// in the why output of that package. Order is preserved.
func SyncAgainstWhy(
	ctx context.Context,
	section domain.Section,
	deps *domain.DependencyMap,
	lookup *WhyLookup,
) (*domain.DependencyMap, []domain.Change, error) {
	return syncMap(section, deps, func(name string) (*domain.DependencyNode, error) {
		ws, err := lookup.Lookup(ctx, name)
		if err != nil {
			return nil, err
		}
		node, ok := ws.FindPackage(name)
		if !ok {
			return nil, notFound(domain.ErrDependencyNotFoundInWhy, section, name, ws)
		}
		return node, nil
	})
}

func syncMap(
	section domain.Section,
	deps *domain.DependencyMap,
	find func(name string) (*domain.DependencyNode, error),
) (*domain.DependencyMap, []domain.Change, error) {
	if deps == nil {
		return nil, nil, nil
	}

	synced := domain.NewDependencyMap()
	var changes []domain.Change
	for name, from := range deps.All() {
		node, err := find(name)
		if err != nil {
			return nil, nil, err
		}
		synced.Set(name, node.Version)
		if from != node.Version {
			changes = append(changes, domain.Change{
				Section:    section,
				Name:       name,
				From:       from,
				To:         node.Version,
				OutOfRange: outOfRange(from, node.Version),
			})
		}
	}
	return synced, changes, nil
}
