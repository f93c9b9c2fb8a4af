// Package app implements the application layer for locksmith.
package app

import (
	"context"
	"path/filepath"

	"go.trai.ch/locksmith/internal/core/domain"
	"go.trai.ch/locksmith/internal/core/ports"
	"go.trai.ch/locksmith/internal/engine/reconciler"
	"go.trai.ch/zerr"
)

const (
	// ManifestMessage confirms a manifest-only synchronization.
	ManifestMessage = "Synchronized package.json dependencies with pnpm lockfile"
	// LockfileMessage confirms a synchronization that also rewrote lockfile specifiers.
	LockfileMessage = "Synchronized package.json and pnpm-lock.yaml specifiers"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	packages     ports.PackageManager
	manifests    ports.ManifestStore
	lockfiles    ports.LockfileStore
	reconciler   *reconciler.Reconciler
	logger       ports.Logger
}

// Options holds the flags shared by every use case.
type Options struct {
	// Dir is the workspace root. Empty means the current directory.
	Dir string
	// ConfigPath overrides the default locksmith.yaml lookup.
	ConfigPath string
	// DryRun computes every change without writing any file.
	DryRun bool
}

// TreeOptions scopes the dependency listing printed by Tree.
type TreeOptions struct {
	Recursive bool
	// Depth overrides the configured depth when set.
	Depth *int
}

// Report is the outcome of a synchronization run.
type Report struct {
	Changes []domain.Change
	DryRun  bool
	Message string
}

// New creates a new App instance.
func New(
	configLoader ports.ConfigLoader,
	packages ports.PackageManager,
	manifests ports.ManifestStore,
	lockfiles ports.LockfileStore,
	rec *reconciler.Reconciler,
	logger ports.Logger,
) *App {
	return &App{
		configLoader: configLoader,
		packages:     packages,
		manifests:    manifests,
		lockfiles:    lockfiles,
		reconciler:   rec,
		logger:       logger,
	}
}

// plan holds every in-memory result of a run until it is committed.
type plan struct {
	manifests []*domain.Manifest
	lockfile  *domain.Lockfile
	rewritten bool
	changes   []domain.Change
}

// SyncManifest rewrites the root project's package.json to the installed versions.
func (a *App) SyncManifest(ctx context.Context, opts Options) (*Report, error) {
	root, cfg, err := a.prepare(opts)
	if err != nil {
		return nil, err
	}

	project, err := a.rootProject(ctx, root)
	if err != nil {
		return nil, err
	}

	var p plan
	if _, err := a.planProject(ctx, &p, root, cfg, project); err != nil {
		return nil, err
	}

	return a.commit(&p, opts.DryRun, ManifestMessage)
}

// SyncLockfile rewrites the root project's package.json, then the root
// importer specifiers of the lockfile.
func (a *App) SyncLockfile(ctx context.Context, opts Options) (*Report, error) {
	root, cfg, err := a.prepare(opts)
	if err != nil {
		return nil, err
	}

	p := plan{}
	if p.lockfile, err = a.lockfiles.Load(filepath.Join(root, cfg.Lockfile)); err != nil {
		return nil, err
	}

	project, err := a.rootProject(ctx, root)
	if err != nil {
		return nil, err
	}

	if err := a.planImporter(ctx, &p, root, cfg, project); err != nil {
		return nil, err
	}

	return a.commit(&p, opts.DryRun, LockfileMessage)
}

// SyncWorkspace rewrites the manifest of every listed workspace project and
// every matching lockfile importer.
func (a *App) SyncWorkspace(ctx context.Context, opts Options) (*Report, error) {
	root, cfg, err := a.prepare(opts)
	if err != nil {
		return nil, err
	}

	p := plan{}
	if p.lockfile, err = a.lockfiles.Load(filepath.Join(root, cfg.Lockfile)); err != nil {
		return nil, err
	}

	depth := cfg.Depth
	ws, err := a.packages.List(ctx, root, ports.ListOptions{Recursive: true, Depth: &depth})
	if err != nil {
		return nil, err
	}
	if ws.Len() == 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrNoProjects, "workspace "+root), "dir", root)
	}

	for project := range ws.Projects() {
		if err := a.planImporter(ctx, &p, root, cfg, project); err != nil {
			return nil, err
		}
	}

	return a.commit(&p, opts.DryRun, LockfileMessage)
}

// Tree returns the installed dependency listing of the workspace.
func (a *App) Tree(ctx context.Context, opts Options, treeOpts TreeOptions) (*domain.Workspace, error) {
	root, cfg, err := a.prepare(opts)
	if err != nil {
		return nil, err
	}

	depth := cfg.Depth
	if treeOpts.Depth != nil {
		depth = *treeOpts.Depth
	}
	return a.packages.List(ctx, root, ports.ListOptions{Recursive: treeOpts.Recursive, Depth: &depth})
}

func (a *App) prepare(opts Options) (string, *domain.Config, error) {
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	root, err := filepath.Abs(dir)
	if err != nil {
		return "", nil, zerr.With(zerr.Wrap(err, "failed to resolve workspace root"), "dir", dir)
	}

	cfg, err := a.configLoader.Load(root, opts.ConfigPath)
	if err != nil {
		return "", nil, err
	}
	a.logger.Debug("workspace root " + root)
	return root, cfg, nil
}

func (a *App) rootProject(ctx context.Context, root string) (*domain.Project, error) {
	ws, err := a.packages.List(ctx, root, ports.ListOptions{})
	if err != nil {
		return nil, err
	}
	return ws.Root()
}

// planProject synchronizes one project's manifest in memory and records it in p.
func (a *App) planProject(
	ctx context.Context,
	p *plan,
	root string,
	cfg *domain.Config,
	project *domain.Project,
) (*domain.Manifest, error) {
	dir := projectDir(root, project)

	m, err := a.manifests.Load(filepath.Join(dir, cfg.Manifest))
	if err != nil {
		return nil, err
	}

	synced, changes, err := a.reconciler.SyncManifest(ctx, m, project, reconciler.ManifestOptions{
		Dir:            dir,
		WhyConcurrency: cfg.WhyConcurrency,
	})
	if err != nil {
		return nil, zerr.With(err, "project", project.Name)
	}

	label := relative(root, synced.Path)
	for i := range changes {
		changes[i].Project = label
	}
	if len(changes) > 0 {
		p.manifests = append(p.manifests, synced)
	}
	p.changes = append(p.changes, changes...)
	return synced, nil
}

// planImporter synchronizes a project's manifest, then its lockfile importer.
func (a *App) planImporter(
	ctx context.Context,
	p *plan,
	root string,
	cfg *domain.Config,
	project *domain.Project,
) error {
	synced, err := a.planProject(ctx, p, root, cfg, project)
	if err != nil {
		return err
	}

	id := domain.ImporterID(root, projectDir(root, project))
	changes, err := a.reconciler.SyncLockfile(p.lockfile, id, synced)
	if err != nil {
		return zerr.With(err, "lockfile", p.lockfile.Path)
	}

	label := cfg.Lockfile + " (" + id + ")"
	for i := range changes {
		changes[i].Project = label
	}
	if len(changes) > 0 {
		p.rewritten = true
	}
	p.changes = append(p.changes, changes...)
	return nil
}

// commit writes the planned manifests in listing order, then the lockfile once.
func (a *App) commit(p *plan, dryRun bool, message string) (*Report, error) {
	report := &Report{Changes: p.changes, DryRun: dryRun, Message: message}
	if dryRun {
		a.logger.Debug("dry run, skipping writes")
		return report, nil
	}

	for _, m := range p.manifests {
		if err := a.manifests.Save(m); err != nil {
			return nil, err
		}
	}

	if p.lockfile != nil && p.rewritten {
		if err := a.lockfiles.Save(p.lockfile); err != nil {
			return nil, err
		}
	}
	return report, nil
}

func projectDir(root string, project *domain.Project) string {
	if project.Path == "" {
		return root
	}
	return project.Path
}

func relative(root, path string) string {
	rel, err := domain.RelativePath(root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
