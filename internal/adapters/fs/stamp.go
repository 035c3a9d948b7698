package fs

import (
	"encoding/hex"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/gird/internal/core/domain"
	"go.trai.ch/zerr"
)

// StampStore records content hashes of files under the engine work
// directory. It backs the ContentChanged predicate dependency: a rule
// depending on it is rebuilt when the file's content changed since the
// last invocation that observed it, regardless of timestamps.
//
// Stamps are an opt-in helper, not engine state: deleting the work
// directory only makes every stamped predicate fire once.
type StampStore struct {
	dir string
}

// NewStampStore creates a store rooted at the given work directory. The
// directory is created lazily on first stamp write.
func NewStampStore(dir string) *StampStore {
	return &StampStore{dir: filepath.Join(dir, "stamps")}
}

// Predicate returns a predicate dependency that fires when the content of
// the file at path differs from the recorded stamp, or when no stamp has
// been recorded yet. The new stamp is recorded as part of the check.
func (s *StampStore) Predicate(path string) *domain.PredicateDependency {
	return domain.Predicate("content-changed:"+path, func() (bool, error) {
		return s.Changed(path)
	})
}

// Changed hashes the file at path, compares it with the recorded stamp
// and updates the stamp. It returns true when the content differs or no
// stamp existed.
func (s *StampStore) Changed(path string) (bool, error) {
	sum, err := hashFile(path)
	if err != nil {
		return false, err
	}

	stampPath := s.stampPath(path)
	previous, err := os.ReadFile(stampPath) //nolint:gosec // path derived from work dir
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return false, zerr.With(zerr.Wrap(err, "failed to read stamp"), "path", path)
	}

	if err == nil && string(previous) == sum {
		return false, nil
	}

	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return false, zerr.Wrap(err, "failed to create stamp directory")
	}
	if err := os.WriteFile(stampPath, []byte(sum), 0o644); err != nil { //nolint:gosec // stamp is not sensitive
		return false, zerr.With(zerr.Wrap(err, "failed to write stamp"), "path", path)
	}
	return true, nil
}

func (s *StampStore) stampPath(path string) string {
	// Hash the path itself so nested paths map to flat stamp file names.
	name := hex.EncodeToString(xxhashSum([]byte(strings.ToValidUTF8(path, "_"))))
	return filepath.Join(s.dir, name)
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path) //nolint:gosec // path is provided by the rule author
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to open file for stamping"), "path", path)
	}
	defer func() { _ = f.Close() }()

	h := xxhash.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to hash file"), "path", path)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func xxhashSum(b []byte) []byte {
	h := xxhash.New()
	_, _ = h.Write(b)
	return h.Sum(nil)
}
