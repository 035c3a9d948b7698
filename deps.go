package gird

import (
	"sync"

	"go.trai.ch/gird/internal/adapters/config"
	"go.trai.ch/gird/internal/adapters/fs"
	"go.trai.ch/gird/internal/core/domain"
)

// Path declares a dependency on a file path. If a rule produces that
// path, the dependency follows the rule; otherwise the file must exist.
func Path(path string) domain.PathDependency {
	return domain.PathDependency{Path: path}
}

// Group bundles several dependencies into one.
func Group(deps ...Dependency) domain.DependencyGroup {
	return domain.DependencyGroup(deps)
}

// Predicate declares a dependency on a condition: the dependent rule is
// out of date whenever fn reports true. fn is invoked at most once per
// invocation, even when shared between rules.
func Predicate(name string, fn func() (bool, error)) *domain.PredicateDependency {
	return domain.Predicate(name, fn)
}

var (
	stampsOnce  sync.Once
	stampsStore *fs.StampStore
)

// ContentChanged declares a predicate that fires when the file's content
// hash differs from the last completed run. Hashes are stamped under the
// configured work directory, .gird by default.
func ContentChanged(path string) *domain.PredicateDependency {
	stampsOnce.Do(func() {
		stampsStore = fs.NewStampStore(stampWorkDir("."))
	})
	return stampsStore.Predicate(path)
}

// stampWorkDir resolves the work directory from the project settings. A
// load failure falls back to the default.
func stampWorkDir(dir string) string {
	settings, err := config.NewLoader().Load(dir)
	if err != nil {
		return domain.DefaultSettings().WorkDir
	}
	return settings.WorkDir
}
