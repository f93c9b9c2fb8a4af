// Package lockfile reads and rewrites the specifiers recorded in pnpm-lock.yaml.
package lockfile

import (
	"bytes"
	"errors"
	iofs "io/fs"
	"os"

	"go.trai.ch/locksmith/internal/adapters/fs"
	"go.trai.ch/locksmith/internal/core/domain"
	"go.trai.ch/locksmith/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Store implements ports.LockfileStore for pnpm-lock.yaml files.
type Store struct {
	writer *fs.Writer
	logger ports.Logger
}

// NewStore creates a new lockfile store.
func NewStore(writer *fs.Writer, logger ports.Logger) *Store {
	return &Store{
		writer: writer,
		logger: logger,
	}
}

// Load parses the lockfile at path.
func (s *Store) Load(path string) (*domain.Lockfile, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is derived from the workspace root
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, zerr.With(zerr.Wrap(domain.ErrLockfileNotFound, "failed to read lockfile"), "path", path)
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read lockfile"), "path", path)
	}

	lf, err := Parse(data)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	lf.Path = path
	return lf, nil
}

// Parse decodes the importer specifiers and overrides of a lockfile document.
func Parse(data []byte) (*domain.Lockfile, error) {
	_, root, err := decode(data)
	if err != nil {
		return nil, err
	}

	lf := &domain.Lockfile{
		Importers: make(map[string]*domain.Importer),
		Overrides: readOverrides(root),
		Source:    data,
	}
	if version, ok := mappingValue(root, keyVersion); ok {
		lf.Version = version.Value
	}
	for id, node := range importerNodes(root) {
		lf.Importers[id] = &domain.Importer{ID: id, Specifiers: readSpecifiers(node)}
	}
	return lf, nil
}

// Save writes the lockfile specifiers back into the original document.
// Everything else in the document, including resolved versions, is kept.
func (s *Store) Save(lf *domain.Lockfile) error {
	data, err := Render(lf)
	if err != nil {
		return zerr.With(err, "path", lf.Path)
	}

	written, err := s.writer.WriteIfChanged(lf.Path, data)
	if err != nil {
		return err
	}
	if written {
		s.logger.Debug("wrote " + lf.Path)
	} else {
		s.logger.Debug("unchanged " + lf.Path)
	}
	lf.Source = data
	return nil
}

// Render produces the document bytes for lf. The original bytes are returned
// untouched when no specifier differs from them.
func Render(lf *domain.Lockfile) ([]byte, error) {
	doc, root, err := decode(lf.Source)
	if err != nil {
		return nil, err
	}

	if current, err := Parse(lf.Source); err == nil && sameSpecifiers(current, lf) {
		return lf.Source, nil
	}

	nodes := importerNodes(root)
	for id, importer := range lf.Importers {
		if node, ok := nodes[id]; ok {
			writeSpecifiers(node, importer.Specifiers)
		}
	}
	if lf.Overrides != nil {
		writeOverrides(root, lf.Overrides)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, zerr.Wrap(err, "failed to encode lockfile")
	}
	if err := enc.Close(); err != nil {
		return nil, zerr.Wrap(err, "failed to encode lockfile")
	}
	return buf.Bytes(), nil
}

// decode returns the document node and its top-level mapping.
func decode(data []byte) (*yaml.Node, *yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, zerr.Wrap(domain.ErrMalformedLockfile, err.Error())
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, nil, zerr.Wrap(domain.ErrMalformedLockfile, "expected a mapping at the document root")
	}
	return &doc, doc.Content[0], nil
}

func sameSpecifiers(a, b *domain.Lockfile) bool {
	if b.Overrides != nil && !a.Overrides.Equal(b.Overrides) {
		return false
	}
	for id, importer := range b.Importers {
		current, ok := a.Importers[id]
		if !ok {
			continue
		}
		if !current.Specifiers.Equal(importer.Specifiers) {
			return false
		}
	}
	return true
}
