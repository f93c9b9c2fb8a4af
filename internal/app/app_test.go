package app_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/locksmith/internal/app"
	"go.trai.ch/locksmith/internal/core/domain"
	"go.trai.ch/locksmith/internal/core/ports"
	"go.trai.ch/locksmith/internal/core/ports/mocks"
	"go.trai.ch/locksmith/internal/engine/reconciler"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	app       *app.App
	root      string
	loader    *mocks.MockConfigLoader
	pm        *mocks.MockPackageManager
	manifests *mocks.MockManifestStore
	lockfiles *mocks.MockLockfileStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		root:      t.TempDir(),
		loader:    mocks.NewMockConfigLoader(ctrl),
		pm:        mocks.NewMockPackageManager(ctrl),
		manifests: mocks.NewMockManifestStore(ctrl),
		lockfiles: mocks.NewMockLockfileStore(ctrl),
	}

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()

	f.app = app.New(f.loader, f.pm, f.manifests, f.lockfiles, reconciler.New(f.pm, logger), logger)
	f.loader.EXPECT().Load(f.root, "").Return(domain.DefaultConfig(), nil)
	return f
}

func depMap(kv ...string) *domain.DependencyMap {
	m := domain.NewDependencyMap()
	for i := 0; i < len(kv); i += 2 {
		m.Set(kv[i], kv[i+1])
	}
	return m
}

func depTree(t *testing.T, kv ...string) *domain.DependencyTree {
	t.Helper()
	tr := domain.NewDependencyTree()
	for i := 0; i < len(kv); i += 2 {
		require.NoError(t, tr.Add(kv[i], &domain.DependencyNode{From: "^" + kv[i+1], Version: kv[i+1]}))
	}
	return tr
}

func TestApp_SyncManifest(t *testing.T) {
	f := newFixture(t)
	path := filepath.Join(f.root, "package.json")
	project := &domain.Project{Name: "root", Path: f.root, Dependencies: depTree(t, "left-pad", "1.3.0")}

	f.pm.EXPECT().List(gomock.Any(), f.root, ports.ListOptions{}).Return(domain.NewWorkspace(project), nil)
	f.manifests.EXPECT().Load(path).Return(&domain.Manifest{Path: path, Dependencies: depMap("left-pad", "^1.0.0")}, nil)
	f.manifests.EXPECT().Save(gomock.Any()).DoAndReturn(func(m *domain.Manifest) error {
		v, _ := m.Dependencies.Get("left-pad")
		assert.Equal(t, "1.3.0", v)
		return nil
	})

	report, err := f.app.SyncManifest(context.Background(), app.Options{Dir: f.root})
	require.NoError(t, err)

	assert.Equal(t, app.ManifestMessage, report.Message)
	require.Len(t, report.Changes, 1)
	assert.Equal(t, "package.json", report.Changes[0].Project)
	assert.Equal(t, "^1.0.0", report.Changes[0].From)
	assert.Equal(t, "1.3.0", report.Changes[0].To)
}

func TestApp_SyncManifest_UnresolvableLeavesManifestUntouched(t *testing.T) {
	f := newFixture(t)
	path := filepath.Join(f.root, "package.json")
	project := &domain.Project{Name: "root", Path: f.root, Dependencies: depTree(t, "left-pad", "1.3.0")}

	f.pm.EXPECT().List(gomock.Any(), f.root, ports.ListOptions{}).Return(domain.NewWorkspace(project), nil)
	f.pm.EXPECT().Why(gomock.Any(), f.root, "glob").Return(domain.NewWorkspace(project), nil)
	f.manifests.EXPECT().Load(path).Return(&domain.Manifest{
		Path:         path,
		Dependencies: depMap("left-pad", "^1.0.0"),
		Resolutions:  depMap("glob", "^7.0.0"),
	}, nil)
	// No Save expectation: any write fails the test.

	_, err := f.app.SyncManifest(context.Background(), app.Options{Dir: f.root})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDependencyNotFoundInWhy))
	assert.ErrorContains(t, err, "glob")
}

func TestApp_SyncManifest_DryRun(t *testing.T) {
	f := newFixture(t)
	path := filepath.Join(f.root, "package.json")
	project := &domain.Project{Name: "root", Path: f.root, Dependencies: depTree(t, "left-pad", "1.3.0")}

	f.pm.EXPECT().List(gomock.Any(), f.root, ports.ListOptions{}).Return(domain.NewWorkspace(project), nil)
	f.manifests.EXPECT().Load(path).Return(&domain.Manifest{Path: path, Dependencies: depMap("left-pad", "^1.0.0")}, nil)

	report, err := f.app.SyncManifest(context.Background(), app.Options{Dir: f.root, DryRun: true})
	require.NoError(t, err)
	assert.True(t, report.DryRun)
	assert.Len(t, report.Changes, 1)
}

func TestApp_SyncManifest_InSyncSkipsWrite(t *testing.T) {
	f := newFixture(t)
	path := filepath.Join(f.root, "package.json")
	project := &domain.Project{Name: "root", Path: f.root, Dependencies: depTree(t, "left-pad", "1.3.0")}

	f.pm.EXPECT().List(gomock.Any(), f.root, ports.ListOptions{}).Return(domain.NewWorkspace(project), nil)
	f.manifests.EXPECT().Load(path).Return(&domain.Manifest{Path: path, Dependencies: depMap("left-pad", "1.3.0")}, nil)

	report, err := f.app.SyncManifest(context.Background(), app.Options{Dir: f.root})
	require.NoError(t, err)
	assert.Empty(t, report.Changes)
}

func TestApp_SyncManifest_ConfigError(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	logger := mocks.NewMockLogger(ctrl)
	pm := mocks.NewMockPackageManager(ctrl)
	a := app.New(loader, pm, mocks.NewMockManifestStore(ctrl), mocks.NewMockLockfileStore(ctrl), reconciler.New(pm, logger), logger)

	root := t.TempDir()
	loader.EXPECT().Load(root, "custom.yaml").Return(nil, domain.ErrInvalidConfig)

	_, err := a.SyncManifest(context.Background(), app.Options{Dir: root, ConfigPath: "custom.yaml"})
	require.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestApp_SyncLockfile(t *testing.T) {
	f := newFixture(t)
	manifestPath := filepath.Join(f.root, "package.json")
	lockfilePath := filepath.Join(f.root, "pnpm-lock.yaml")
	project := &domain.Project{Name: "root", Path: f.root, Dependencies: depTree(t, "left-pad", "1.3.0")}
	lf := &domain.Lockfile{
		Path:    lockfilePath,
		Version: "6.0",
		Importers: map[string]*domain.Importer{
			domain.RootImporterID: {ID: domain.RootImporterID, Specifiers: depMap("left-pad", "^1.0.0")},
		},
	}

	gomock.InOrder(
		f.lockfiles.EXPECT().Load(lockfilePath).Return(lf, nil),
		f.pm.EXPECT().List(gomock.Any(), f.root, ports.ListOptions{}).Return(domain.NewWorkspace(project), nil),
		f.manifests.EXPECT().Load(manifestPath).Return(&domain.Manifest{
			Path:         manifestPath,
			Dependencies: depMap("left-pad", "^1.0.0"),
		}, nil),
		f.manifests.EXPECT().Save(gomock.Any()).Return(nil),
		f.lockfiles.EXPECT().Save(lf).Return(nil),
	)

	report, err := f.app.SyncLockfile(context.Background(), app.Options{Dir: f.root})
	require.NoError(t, err)

	assert.Equal(t, app.LockfileMessage, report.Message)
	require.Len(t, report.Changes, 2)
	assert.Equal(t, "pnpm-lock.yaml (.)", report.Changes[1].Project)
	v, _ := lf.Importers["."].Specifiers.Get("left-pad")
	assert.Equal(t, "1.3.0", v)
}

func TestApp_SyncLockfile_MissingLockfile(t *testing.T) {
	f := newFixture(t)
	lockfilePath := filepath.Join(f.root, "pnpm-lock.yaml")

	f.lockfiles.EXPECT().Load(lockfilePath).Return(nil, domain.ErrLockfileNotFound)

	_, err := f.app.SyncLockfile(context.Background(), app.Options{Dir: f.root})
	require.ErrorIs(t, err, domain.ErrLockfileNotFound)
}

func TestApp_SyncWorkspace(t *testing.T) {
	f := newFixture(t)
	apiDir := filepath.Join(f.root, "packages", "api")
	lockfilePath := filepath.Join(f.root, "pnpm-lock.yaml")

	rootProject := &domain.Project{Name: "root", Path: f.root, DevDependencies: depTree(t, "typescript", "5.4.5")}
	apiProject := &domain.Project{Name: "api", Path: apiDir, Dependencies: depTree(t, "express", "4.19.2")}
	lf := &domain.Lockfile{
		Path:    lockfilePath,
		Version: "6.0",
		Importers: map[string]*domain.Importer{
			".":            {ID: ".", Specifiers: depMap("typescript", "^5.0.0")},
			"packages/api": {ID: "packages/api", Specifiers: depMap("express", "^4.0.0")},
		},
	}
	rootManifest := &domain.Manifest{Path: filepath.Join(f.root, "package.json"), DevDependencies: depMap("typescript", "^5.0.0")}
	apiManifest := &domain.Manifest{Path: filepath.Join(apiDir, "package.json"), Dependencies: depMap("express", "^4.0.0")}

	depth := 0
	f.lockfiles.EXPECT().Load(lockfilePath).Return(lf, nil)
	f.pm.EXPECT().List(gomock.Any(), f.root, ports.ListOptions{Recursive: true, Depth: &depth}).
		Return(domain.NewWorkspace(rootProject, apiProject), nil)
	f.manifests.EXPECT().Load(rootManifest.Path).Return(rootManifest, nil)
	f.manifests.EXPECT().Load(apiManifest.Path).Return(apiManifest, nil)

	var saved []string
	f.manifests.EXPECT().Save(gomock.Any()).DoAndReturn(func(m *domain.Manifest) error {
		saved = append(saved, m.Path)
		return nil
	}).Times(2)
	f.lockfiles.EXPECT().Save(lf).Return(nil).Times(1)

	report, err := f.app.SyncWorkspace(context.Background(), app.Options{Dir: f.root})
	require.NoError(t, err)

	assert.Equal(t, []string{rootManifest.Path, apiManifest.Path}, saved)
	assert.Len(t, report.Changes, 4)
	express, _ := lf.Importers["packages/api"].Specifiers.Get("express")
	assert.Equal(t, "4.19.2", express)
}

func TestApp_SyncWorkspace_FailureWritesNothing(t *testing.T) {
	f := newFixture(t)
	apiDir := filepath.Join(f.root, "packages", "api")
	lockfilePath := filepath.Join(f.root, "pnpm-lock.yaml")

	rootProject := &domain.Project{Name: "root", Path: f.root, Dependencies: depTree(t, "left-pad", "1.3.0")}
	apiProject := &domain.Project{Name: "api", Path: apiDir, Dependencies: depTree(t, "koa", "2.15.3")}
	lf := &domain.Lockfile{
		Path:    lockfilePath,
		Version: "6.0",
		Importers: map[string]*domain.Importer{
			".":            {ID: ".", Specifiers: depMap("left-pad", "^1.0.0")},
			"packages/api": {ID: "packages/api", Specifiers: depMap()},
		},
	}

	depth := 0
	f.lockfiles.EXPECT().Load(lockfilePath).Return(lf, nil)
	f.pm.EXPECT().List(gomock.Any(), f.root, ports.ListOptions{Recursive: true, Depth: &depth}).
		Return(domain.NewWorkspace(rootProject, apiProject), nil)
	f.manifests.EXPECT().Load(filepath.Join(f.root, "package.json")).
		Return(&domain.Manifest{Dependencies: depMap("left-pad", "^1.0.0")}, nil)
	f.manifests.EXPECT().Load(filepath.Join(apiDir, "package.json")).
		Return(&domain.Manifest{Dependencies: depMap("express", "^4.0.0")}, nil)

	_, err := f.app.SyncWorkspace(context.Background(), app.Options{Dir: f.root})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDependencyNotFound))
	assert.ErrorContains(t, err, "express")
}

func TestApp_SyncWorkspace_NoProjects(t *testing.T) {
	f := newFixture(t)
	lockfilePath := filepath.Join(f.root, "pnpm-lock.yaml")

	depth := 0
	f.lockfiles.EXPECT().Load(lockfilePath).Return(&domain.Lockfile{Path: lockfilePath}, nil)
	f.pm.EXPECT().List(gomock.Any(), f.root, ports.ListOptions{Recursive: true, Depth: &depth}).
		Return(domain.NewWorkspace(), nil)

	_, err := f.app.SyncWorkspace(context.Background(), app.Options{Dir: f.root})
	require.ErrorIs(t, err, domain.ErrNoProjects)
}

func TestApp_Tree(t *testing.T) {
	f := newFixture(t)
	ws := domain.NewWorkspace(&domain.Project{Name: "root"})

	depth := 3
	f.pm.EXPECT().List(gomock.Any(), f.root, ports.ListOptions{Recursive: true, Depth: &depth}).Return(ws, nil)

	got, err := f.app.Tree(context.Background(), app.Options{Dir: f.root}, app.TreeOptions{Recursive: true, Depth: &depth})
	require.NoError(t, err)
	assert.Same(t, ws, got)
}
