// Package reconciler rewrites manifest and lockfile specifiers to the versions
// the package manager actually installed.
package reconciler

import (
	"slices"

	"github.com/Masterminds/semver/v3"
	"github.com/sahilm/fuzzy"
	"go.trai.ch/locksmith/internal/core/domain"
	"go.trai.ch/locksmith/internal/core/ports"
	"go.trai.ch/zerr"
)

const maxSuggestions = 5

// Reconciler synchronizes manifests and lockfiles against installed trees.
type Reconciler struct {
	pm     ports.PackageManager
	logger ports.Logger
}

// New creates a new Reconciler.
func New(pm ports.PackageManager, logger ports.Logger) *Reconciler {
	return &Reconciler{
		pm:     pm,
		logger: logger,
	}
}

// notFound builds a dependency lookup failure carrying the section and
// close matches from the lookup source.
func notFound(sentinel error, section domain.Section, name string, finder domain.PackageFinder) error {
	err := zerr.Wrap(sentinel, "dependency "+name)
	err = zerr.With(err, "package", name)
	err = zerr.With(err, "section", string(section))
	if suggestions := suggest(name, finder); len(suggestions) > 0 {
		err = zerr.With(err, "suggestions", suggestions)
	}
	return err
}

func suggest(name string, finder domain.PackageFinder) []string {
	if finder == nil {
		return nil
	}
	var candidates []string
	for candidate := range finder.Names() {
		if !slices.Contains(candidates, candidate) {
			candidates = append(candidates, candidate)
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	var out []string
	for _, match := range fuzzy.Find(name, candidates) {
		out = append(out, match.Str)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}

// outOfRange reports whether the previous specifier was a valid range that
// the resolved version does not satisfy.
func outOfRange(from, to string) bool {
	constraint, err := semver.NewConstraint(from)
	if err != nil {
		return false
	}
	version, err := semver.NewVersion(to)
	if err != nil {
		return false
	}
	return !constraint.Check(version)
}
