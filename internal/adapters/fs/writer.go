// Package fs provides content-addressed file writes for the manifest and lockfile stores.
package fs

import (
	"errors"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"
)

const defaultFilePerm iofs.FileMode = 0o644

// Writer writes files only when their content fingerprint changes.
type Writer struct{}

// NewWriter creates a new Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Fingerprint returns the XXHash of data.
func Fingerprint(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// ComputeFileHash computes the XXHash of a file's content.
func (w *Writer) ComputeFileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	return hasher.Sum64(), nil
}

// WriteIfChanged replaces the file at path with data unless the file already
// holds the same content. The existing file mode is kept. It reports whether
// the file was written.
func (w *Writer) WriteIfChanged(path string, data []byte) (bool, error) {
	perm := defaultFilePerm
	info, err := os.Stat(path)
	switch {
	case err == nil:
		perm = info.Mode().Perm()
		current, err := w.ComputeFileHash(path)
		if err != nil {
			return false, err
		}
		if current == Fingerprint(data) {
			return false, nil
		}
	case !errors.Is(err, iofs.ErrNotExist):
		return false, zerr.With(zerr.Wrap(err, "failed to stat file"), "path", path)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return false, zerr.With(zerr.Wrap(err, "failed to create temporary file"), "path", path)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // Already renamed on success

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return false, zerr.With(zerr.Wrap(err, "failed to write file"), "path", path)
	}
	if err := tmp.Close(); err != nil {
		return false, zerr.With(zerr.Wrap(err, "failed to write file"), "path", path)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return false, zerr.With(zerr.Wrap(err, "failed to set file mode"), "path", path)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return false, zerr.With(zerr.Wrap(err, "failed to replace file"), "path", path)
	}

	return true, nil
}
