// Package girdfile locates and runs the girdfile, the Go program that
// declares the project's rules and hands them to the engine.
package girdfile

import (
	"os"
	"path/filepath"

	"go.trai.ch/zerr"
)

// ErrNotFound indicates no girdfile exists at the resolved path.
var ErrNotFound = zerr.New("girdfile not found")

// Locate resolves the girdfile path. An explicit path wins; otherwise the
// name from settings is resolved against dir. The returned path is
// absolute.
func Locate(dir, explicit, fallback string) (string, error) {
	name := explicit
	if name == "" {
		name = fallback
	}
	if !filepath.IsAbs(name) {
		name = filepath.Join(dir, name)
	}
	name, err := filepath.Abs(name)
	if err != nil {
		return "", zerr.Wrap(err, "resolve girdfile path")
	}

	info, err := os.Stat(name)
	if err != nil {
		if os.IsNotExist(err) {
			return "", zerr.With(ErrNotFound, "path", name)
		}
		return "", zerr.Wrap(err, "stat girdfile")
	}
	if info.IsDir() {
		return "", zerr.With(ErrNotFound, "path", name)
	}
	return name, nil
}
