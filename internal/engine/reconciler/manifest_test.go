package reconciler_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/locksmith/internal/core/domain"
	"go.trai.ch/locksmith/internal/core/ports/mocks"
	"go.trai.ch/locksmith/internal/engine/reconciler"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

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

func whyOutput(t *testing.T, name, version string) *domain.Workspace {
	t.Helper()
	return domain.NewWorkspace(&domain.Project{
		Name:         "root",
		Dependencies: depTree(t, "some-parent", "1.0.0"),
	}, &domain.Project{
		Name:         "pkg",
		Dependencies: depTree(t, name, version),
	})
}

func newReconciler(t *testing.T) (*reconciler.Reconciler, *mocks.MockPackageManager, *mocks.MockLogger) {
	t.Helper()
	ctrl := gomock.NewController(t)
	pm := mocks.NewMockPackageManager(ctrl)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	return reconciler.New(pm, logger), pm, logger
}

func TestSyncManifest_LeftPad(t *testing.T) {
	r, _, _ := newReconciler(t)
	m := &domain.Manifest{Path: "package.json", Dependencies: depMap("left-pad", "^1.0.0")}
	project := &domain.Project{Name: "root", Dependencies: depTree(t, "left-pad", "1.3.0")}

	synced, changes, err := r.SyncManifest(context.Background(), m, project, reconciler.ManifestOptions{})
	require.NoError(t, err)

	v, _ := synced.Dependencies.Get("left-pad")
	assert.Equal(t, "1.3.0", v)
	assert.Equal(t, []domain.Change{{
		Project: "package.json",
		Section: domain.SectionDependencies,
		Name:    "left-pad",
		From:    "^1.0.0",
		To:      "1.3.0",
	}}, changes)

	orig, _ := m.Dependencies.Get("left-pad")
	assert.Equal(t, "^1.0.0", orig, "input manifest must not be modified")
}

func TestSyncManifest_UsesResolvedVersionNotFrom(t *testing.T) {
	r, _, _ := newReconciler(t)
	tree := domain.NewDependencyTree()
	require.NoError(t, tree.Add("react", &domain.DependencyNode{From: "^18.0.0", Version: "18.2.0"}))
	m := &domain.Manifest{Dependencies: depMap("react", "^18.0.0")}

	synced, _, err := r.SyncManifest(context.Background(), m, &domain.Project{Dependencies: tree}, reconciler.ManifestOptions{})
	require.NoError(t, err)

	v, _ := synced.Dependencies.Get("react")
	assert.Equal(t, "18.2.0", v)
}

func TestSyncManifest_DevDependenciesUseDevTree(t *testing.T) {
	r, _, _ := newReconciler(t)
	m := &domain.Manifest{
		Dependencies:    depMap("react", "^18.0.0"),
		DevDependencies: depMap("vitest", "^1.0.0"),
	}
	project := &domain.Project{
		Dependencies:    depTree(t, "react", "18.2.0"),
		DevDependencies: depTree(t, "vitest", "1.6.0"),
	}

	synced, changes, err := r.SyncManifest(context.Background(), m, project, reconciler.ManifestOptions{})
	require.NoError(t, err)

	v, _ := synced.DevDependencies.Get("vitest")
	assert.Equal(t, "1.6.0", v)
	require.Len(t, changes, 2)
	assert.Equal(t, domain.SectionDependencies, changes[0].Section)
	assert.Equal(t, domain.SectionDevDependencies, changes[1].Section)
}

func TestSyncManifest_SkipsSectionWithoutInstalledTree(t *testing.T) {
	r, _, _ := newReconciler(t)
	m := &domain.Manifest{
		Dependencies:    depMap("left-pad", "^1.0.0"),
		DevDependencies: depMap("vitest", "^1.0.0"),
	}
	// A production-only install lists no dev tree.
	project := &domain.Project{Dependencies: depTree(t, "left-pad", "1.3.0")}

	synced, changes, err := r.SyncManifest(context.Background(), m, project, reconciler.ManifestOptions{})
	require.NoError(t, err)

	v, _ := synced.DevDependencies.Get("vitest")
	assert.Equal(t, "^1.0.0", v)
	require.Len(t, changes, 1)
	assert.Equal(t, "left-pad", changes[0].Name)
}

func TestSyncManifest_EmptyInstalledTreeFails(t *testing.T) {
	r, _, _ := newReconciler(t)
	m := &domain.Manifest{DevDependencies: depMap("vitest", "^1.0.0")}
	project := &domain.Project{DevDependencies: domain.NewDependencyTree()}

	_, _, err := r.SyncManifest(context.Background(), m, project, reconciler.ManifestOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDependencyNotFound))
	assert.ErrorContains(t, err, "vitest")
}

func TestSyncManifest_PreservesOrder(t *testing.T) {
	r, _, _ := newReconciler(t)
	m := &domain.Manifest{Dependencies: depMap("zod", "^3.0.0", "axios", "^1.0.0", "lodash", "^4.0.0")}
	project := &domain.Project{Dependencies: depTree(t, "lodash", "4.17.21", "axios", "1.7.2", "zod", "3.23.8")}

	synced, _, err := r.SyncManifest(context.Background(), m, project, reconciler.ManifestOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"zod", "axios", "lodash"}, synced.Dependencies.Keys())
}

func TestSyncManifest_Idempotent(t *testing.T) {
	r, pm, _ := newReconciler(t)
	pm.EXPECT().Why(gomock.Any(), "/ws", "glob").Return(whyOutput(t, "glob", "7.2.3"), nil).Times(2)

	m := &domain.Manifest{
		Dependencies: depMap("left-pad", "^1.0.0"),
		Resolutions:  depMap("glob", "^7.0.0"),
	}
	project := &domain.Project{Dependencies: depTree(t, "left-pad", "1.3.0")}
	opts := reconciler.ManifestOptions{Dir: "/ws"}

	first, changes, err := r.SyncManifest(context.Background(), m, project, opts)
	require.NoError(t, err)
	require.Len(t, changes, 2)

	second, changes, err := r.SyncManifest(context.Background(), first, project, opts)
	require.NoError(t, err)
	assert.Empty(t, changes)
	assert.True(t, first.Dependencies.Equal(second.Dependencies))
	assert.True(t, first.Resolutions.Equal(second.Resolutions))
}

func TestSyncManifest_SkipsAbsentSections(t *testing.T) {
	r, _, _ := newReconciler(t)
	m := &domain.Manifest{Dependencies: domain.NewDependencyMap()}

	synced, changes, err := r.SyncManifest(context.Background(), m, &domain.Project{}, reconciler.ManifestOptions{})
	require.NoError(t, err)
	assert.Empty(t, changes)
	assert.NotNil(t, synced.Dependencies, "present empty section stays present")
	assert.Nil(t, synced.DevDependencies)
	assert.Nil(t, synced.Resolutions)
	assert.Nil(t, synced.Overrides)
}

func TestSyncManifest_ResolutionMissingFromWhy(t *testing.T) {
	r, pm, _ := newReconciler(t)
	pm.EXPECT().Why(gomock.Any(), ".", "glob").Return(domain.NewWorkspace(&domain.Project{Name: "root"}), nil)

	m := &domain.Manifest{Resolutions: depMap("glob", "^7.0.0")}

	synced, changes, err := r.SyncManifest(context.Background(), m, &domain.Project{}, reconciler.ManifestOptions{Dir: "."})
	require.Error(t, err)
	assert.Nil(t, synced)
	assert.Nil(t, changes)
	assert.True(t, errors.Is(err, domain.ErrDependencyNotFoundInWhy))
	assert.ErrorContains(t, err, "dependency glob")

	var zErr *zerr.Error
	require.True(t, errors.As(err, &zErr))
	assert.Equal(t, "glob", zErr.Metadata()["package"])
	assert.Equal(t, "resolutions", zErr.Metadata()["section"])
}

func TestSyncManifest_WhyMemoisedAcrossSections(t *testing.T) {
	r, pm, _ := newReconciler(t)
	pm.EXPECT().Why(gomock.Any(), "/ws", "glob").Return(whyOutput(t, "glob", "7.2.3"), nil).Times(1)

	m := &domain.Manifest{
		Resolutions: depMap("glob", "^7.0.0"),
		Overrides:   depMap("glob", "7"),
	}

	synced, changes, err := r.SyncManifest(context.Background(), m, &domain.Project{}, reconciler.ManifestOptions{Dir: "/ws"})
	require.NoError(t, err)

	v, _ := synced.Overrides.Get("glob")
	assert.Equal(t, "7.2.3", v)
	require.Len(t, changes, 2)
	assert.Equal(t, domain.SectionResolutions, changes[0].Section)
	assert.Equal(t, domain.SectionOverrides, changes[1].Section)
}

func TestSyncManifest_PrefetchReportsFirstFailureInOrder(t *testing.T) {
	r, pm, _ := newReconciler(t)
	pm.EXPECT().Why(gomock.Any(), "/ws", "a").Return(whyOutput(t, "a", "1.0.0"), nil)
	pm.EXPECT().Why(gomock.Any(), "/ws", "b").Return(domain.NewWorkspace(), nil)
	pm.EXPECT().Why(gomock.Any(), "/ws", "c").Return(nil, domain.ErrPackageManagerFailed)

	m := &domain.Manifest{Resolutions: depMap("a", "^1.0.0", "b", "^1.0.0", "c", "^1.0.0")}

	_, _, err := r.SyncManifest(context.Background(), m, &domain.Project{}, reconciler.ManifestOptions{Dir: "/ws", WhyConcurrency: 3})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDependencyNotFoundInWhy))
	assert.ErrorContains(t, err, "dependency b")
}

func TestSyncManifest_TreeFailureSkipsWhyPrefetch(t *testing.T) {
	r, _, _ := newReconciler(t)
	// No Why expectation: any query fails the test.
	m := &domain.Manifest{
		Dependencies: depMap("missing", "^1.0.0"),
		Resolutions:  depMap("a", "^1.0.0", "b", "^1.0.0"),
	}
	project := &domain.Project{Dependencies: depTree(t, "left-pad", "1.3.0")}

	_, _, err := r.SyncManifest(context.Background(), m, project, reconciler.ManifestOptions{Dir: "/ws", WhyConcurrency: 4})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDependencyNotFound))
}

func TestSyncManifest_SequentialStopsAtFirstFailure(t *testing.T) {
	r, pm, _ := newReconciler(t)
	pm.EXPECT().Why(gomock.Any(), "/ws", "a").Return(domain.NewWorkspace(), nil)

	m := &domain.Manifest{Resolutions: depMap("a", "^1.0.0", "b", "^1.0.0")}

	_, _, err := r.SyncManifest(context.Background(), m, &domain.Project{}, reconciler.ManifestOptions{Dir: "/ws", WhyConcurrency: 1})
	require.Error(t, err)
	assert.ErrorContains(t, err, "dependency a")
}

func TestSyncManifest_OutOfRangeWarns(t *testing.T) {
	r, _, logger := newReconciler(t)
	logger.EXPECT().Warn("dependencies left-pad: 2.0.0 does not satisfy ^1.0.0")

	m := &domain.Manifest{Dependencies: depMap("left-pad", "^1.0.0")}
	project := &domain.Project{Dependencies: depTree(t, "left-pad", "2.0.0")}

	_, changes, err := r.SyncManifest(context.Background(), m, project, reconciler.ManifestOptions{})
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.True(t, changes[0].OutOfRange)
}

func TestSyncAgainstTree_Suggestions(t *testing.T) {
	project := &domain.Project{Dependencies: depTree(t, "lodash", "4.17.21", "lodash.merge", "4.6.2", "zod", "3.23.8")}

	_, _, err := reconciler.SyncAgainstTree(domain.SectionDependencies, depMap("lodsh", "^4.0.0"), project)
	require.Error(t, err)

	var zErr *zerr.Error
	require.True(t, errors.As(err, &zErr))
	suggestions, ok := zErr.Metadata()["suggestions"].([]string)
	require.True(t, ok)
	assert.Contains(t, suggestions, "lodash")
	assert.NotContains(t, suggestions, "zod")
}

func TestSyncAgainstTree_ShallowerEntryWins(t *testing.T) {
	nested := depTree(t, "glob", "7.2.3")
	tree := domain.NewDependencyTree()
	require.NoError(t, tree.Add("rimraf", &domain.DependencyNode{Version: "3.0.2", Dependencies: nested}))
	require.NoError(t, tree.Add("glob", &domain.DependencyNode{Version: "10.4.1"}))

	synced, _, err := reconciler.SyncAgainstTree(domain.SectionDependencies, depMap("glob", "*"), tree)
	require.NoError(t, err)

	v, _ := synced.Get("glob")
	assert.Equal(t, "10.4.1", v)
}
