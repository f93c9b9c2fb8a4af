// Package config provides the loader for the optional locksmith.yaml file.
package config

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"go.trai.ch/locksmith/internal/core/domain"
	"go.trai.ch/locksmith/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	logger   ports.Logger
	validate *validator.Validate
}

// NewLoader creates a new configuration loader.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{
		logger:   logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Load reads the configuration for the workspace root.
//
// With an empty path the default locksmith.yaml is used when present and the
// built-in defaults otherwise. An explicit path must exist; relative paths are
// resolved against root.
func (l *Loader) Load(root, path string) (*domain.Config, error) {
	explicit := path != ""
	if !explicit {
		path = domain.DefaultConfigName
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if explicit {
				return nil, zerr.With(zerr.Wrap(domain.ErrConfigNotFound, "failed to read config file"), "path", path)
			}
			l.logger.Debug("no " + domain.DefaultConfigName + " found, using defaults")
			return domain.DefaultConfig(), nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read config file"), "path", path)
	}

	cfg, err := l.parse(data)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}

	l.logger.Debug("loaded config from " + path)
	return cfg, nil
}

func (l *Loader) parse(data []byte) (*domain.Config, error) {
	var file File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, zerr.Wrap(err, "failed to parse config file")
	}

	cfg := file.apply(domain.DefaultConfig())
	if err := l.validate.Struct(cfg); err != nil {
		return nil, validationError(err)
	}
	return cfg, nil
}

func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return zerr.Wrap(err, domain.ErrInvalidConfig.Error())
	}

	first := fieldErrs[0]
	out := zerr.Wrap(domain.ErrInvalidConfig, "field "+first.Field()+" failed "+first.Tag())
	out = zerr.With(out, "field", first.Field())
	if first.Param() != "" {
		out = zerr.With(out, "limit", first.Param())
	}
	return out
}
