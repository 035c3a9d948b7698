package ports

import "time"

// FileStater reports file modification times for staleness comparison.
// The file system is the engine's only persisted state between runs.
//
//go:generate go run go.uber.org/mock/mockgen -source=stater.go -destination=mocks/mock_stater.go -package=mocks
type FileStater interface {
	// ModTime returns the modification time of the file at path and
	// whether the file exists. The error is reserved for stat failures
	// other than non-existence.
	ModTime(path string) (time.Time, bool, error)
}
