// Package fs provides file-system adapters: modification-time lookup and
// content stamps.
package fs

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"go.trai.ch/gird/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.FileStater = (*Stater)(nil)

// Stater implements ports.FileStater with os.Stat.
type Stater struct{}

// NewStater creates a new Stater.
func NewStater() *Stater {
	return &Stater{}
}

// ModTime returns the modification time of the file at path and whether it
// exists.
func (s *Stater) ModTime(path string) (time.Time, bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, zerr.With(zerr.Wrap(err, "failed to stat file"), "path", path)
	}
	return info.ModTime(), true, nil
}
