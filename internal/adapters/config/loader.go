// Package config provides the tool settings loader for gird.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/gird/internal/core/domain"
	"go.trai.ch/gird/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Filename is the settings file looked up in the project directory.
const Filename = ".gird.yaml"

var _ ports.SettingsLoader = (*Loader)(nil)

// Loader implements ports.SettingsLoader using a YAML file.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads settings from dir/.gird.yaml. A missing file yields the
// defaults; a malformed file is an error.
func (l *Loader) Load(dir string) (domain.Settings, error) {
	settings := domain.DefaultSettings()

	path := filepath.Join(dir, Filename)
	data, err := os.ReadFile(path) //nolint:gosec // path is rooted in the project directory
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return settings, nil
		}
		return settings, zerr.With(zerr.Wrap(err, "failed to read settings file"), "path", path)
	}

	var dto settingsDTO
	if err := yaml.Unmarshal(data, &dto); err != nil {
		return settings, zerr.With(zerr.Wrap(err, "failed to parse settings file"), "path", path)
	}

	if dto.Girdfile != "" {
		settings.Girdfile = dto.Girdfile
	}
	if dto.Parallelism > 0 {
		settings.Parallelism = dto.Parallelism
	}
	if dto.WorkDir != "" {
		settings.WorkDir = dto.WorkDir
	}
	settings.OutputSync = dto.OutputSync
	settings.Verbose = dto.Verbose

	return settings, nil
}
