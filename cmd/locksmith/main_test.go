package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/locksmith/internal/app"
	"go.trai.ch/locksmith/internal/core/domain"
	"go.trai.ch/locksmith/internal/core/ports/mocks"
	"go.trai.ch/locksmith/internal/engine/reconciler"
	"go.uber.org/mock/gomock"
)

func newComponents(t *testing.T) (*app.Components, *mocks.MockConfigLoader, *mocks.MockLogger) {
	t.Helper()
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	logger := mocks.NewMockLogger(ctrl)
	pm := mocks.NewMockPackageManager(ctrl)

	a := app.New(
		loader,
		pm,
		mocks.NewMockManifestStore(ctrl),
		mocks.NewMockLockfileStore(ctrl),
		reconciler.New(pm, logger),
		logger,
	)
	return app.NewComponents(a, logger), loader, logger
}

func TestRun_ProviderError(t *testing.T) {
	var stderr bytes.Buffer
	code := run(context.Background(), nil, &bytes.Buffer{}, &stderr, func(context.Context) (*app.Components, error) {
		return nil, errors.New("graph failed")
	})

	assert.Equal(t, 1, code)
	assert.Equal(t, "Error: graph failed\n", stderr.String())
}

func TestRun_Version(t *testing.T) {
	components, _, _ := newComponents(t)

	var stdout bytes.Buffer
	code := run(context.Background(), []string{"version"}, &stdout, &bytes.Buffer{}, func(context.Context) (*app.Components, error) {
		return components, nil
	})

	assert.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "locksmith version")
}

func TestRun_CommandErrorIsLogged(t *testing.T) {
	components, loader, logger := newComponents(t)
	root := t.TempDir()

	loader.EXPECT().Load(root, "").Return(nil, domain.ErrInvalidConfig)
	logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorIs(t, err, domain.ErrInvalidConfig)
	})

	code := run(context.Background(), []string{"-C", root}, &bytes.Buffer{}, &bytes.Buffer{}, func(context.Context) (*app.Components, error) {
		return components, nil
	})

	assert.Equal(t, 1, code)
}
