package fs_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/gird/internal/adapters/fs"
)

func TestStater_ModTime(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	stamp := time.Now().Add(-time.Hour).Truncate(time.Second)
	require.NoError(t, os.Chtimes(path, stamp, stamp))

	mtime, exists, err := fs.NewStater().ModTime(path)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.True(t, mtime.Equal(stamp), "mtime = %v, want %v", mtime, stamp)
}

func TestStater_ModTime_Missing(t *testing.T) {
	_, exists, err := fs.NewStater().ModTime(filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)
	assert.False(t, exists)
}
