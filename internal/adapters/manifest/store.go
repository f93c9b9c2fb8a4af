// Package manifest reads and writes package.json documents without disturbing
// the fields it does not own.
package manifest

import (
	"errors"
	iofs "io/fs"
	"os"

	"go.trai.ch/locksmith/internal/adapters/fs"
	"go.trai.ch/locksmith/internal/core/domain"
	"go.trai.ch/locksmith/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	pnpmKey      = "pnpm"
	overridesKey = "overrides"
)

var topLevelSections = []domain.Section{
	domain.SectionDependencies,
	domain.SectionDevDependencies,
	domain.SectionResolutions,
}

// Store implements ports.ManifestStore for package.json files.
type Store struct {
	writer *fs.Writer
	logger ports.Logger
}

// NewStore creates a new manifest store.
func NewStore(writer *fs.Writer, logger ports.Logger) *Store {
	return &Store{
		writer: writer,
		logger: logger,
	}
}

// Load parses the manifest at path.
func (s *Store) Load(path string) (*domain.Manifest, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is derived from the workspace listing
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, zerr.With(zerr.Wrap(domain.ErrManifestNotFound, "failed to read manifest"), "path", path)
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read manifest"), "path", path)
	}

	m, err := Parse(data)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	m.Path = path
	return m, nil
}

// Parse decodes the dependency sections of a package.json document.
func Parse(data []byte) (*domain.Manifest, error) {
	obj, err := parseObject(data)
	if err != nil {
		return nil, malformed(err)
	}

	m := &domain.Manifest{Source: data}
	for _, section := range topLevelSections {
		raw, ok := obj.get(string(section))
		if !ok {
			continue
		}
		deps, err := parseDependencyMap(raw)
		if err != nil {
			return nil, zerr.With(malformed(err), "section", string(section))
		}
		m.SetSection(section, deps)
	}

	if raw, ok := obj.get(pnpmKey); ok {
		pnpm, err := parseObject(raw)
		if err != nil && !isNull(raw) {
			return nil, zerr.With(malformed(err), "section", pnpmKey)
		}
		if pnpm != nil {
			if rawOverrides, ok := pnpm.get(overridesKey); ok {
				if m.Overrides, err = parseDependencyMap(rawOverrides); err != nil {
					return nil, zerr.With(malformed(err), "section", string(domain.SectionOverrides))
				}
			}
		}
	}

	return m, nil
}

// Save writes the manifest back to its path. Present sections replace their
// counterparts in the original document; every other field keeps its position
// and value.
func (s *Store) Save(m *domain.Manifest) error {
	data, err := Render(m)
	if err != nil {
		return zerr.With(err, "path", m.Path)
	}

	written, err := s.writer.WriteIfChanged(m.Path, data)
	if err != nil {
		return err
	}
	if written {
		s.logger.Debug("wrote " + m.Path)
	} else {
		s.logger.Debug("unchanged " + m.Path)
	}
	m.Source = data
	return nil
}

// Render produces the document bytes for m, formatted with two-space
// indentation and a trailing newline.
func Render(m *domain.Manifest) ([]byte, error) {
	obj, err := parseObject(m.Source)
	if err != nil {
		return nil, malformed(err)
	}

	for _, section := range topLevelSections {
		if deps := m.Section(section); deps != nil {
			obj.set(string(section), encodeDependencyMap(deps))
		}
	}

	if m.Overrides != nil {
		pnpm := &object{}
		if raw, ok := obj.get(pnpmKey); ok && !isNull(raw) {
			if pnpm, err = parseObject(raw); err != nil {
				return nil, malformed(err)
			}
		}
		pnpm.set(overridesKey, encodeDependencyMap(m.Overrides))
		obj.set(pnpmKey, pnpm.encode())
	}

	out, err := indent(obj.encode())
	if err != nil {
		return nil, malformed(err)
	}
	return out, nil
}

func malformed(err error) error {
	return zerr.Wrap(domain.ErrMalformedManifest, err.Error())
}

func isNull(raw []byte) bool {
	return string(raw) == "null"
}
