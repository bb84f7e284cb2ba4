package logsources

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir, name string, mtime time.Time) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0o644))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
	return path
}

func TestCollect_OrdersByModTime(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	base := time.Date(2025, 12, 28, 0, 0, 0, 0, time.UTC)
	current := touch(t, dir, "access_json.log", base.Add(3*time.Hour))
	rotated := touch(t, dir, "access_json_20251227.log", base.Add(2*time.Hour))
	compressed := touch(t, dir, "access_json_20251226.log.gz", base.Add(1*time.Hour))
	touch(t, dir, "error.log", base)
	touch(t, dir, "access_json.log.bak", base)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "access_json_dir.log"), 0o755))

	files := NewCollector(nil).Collect(context.Background(), dir)

	assert.Equal(t, []string{compressed, rotated, current}, files)
}

func TestCollect_TiesBrokenByPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	mtime := time.Date(2025, 12, 28, 0, 0, 0, 0, time.UTC)
	b := touch(t, dir, "access_json_b.log", mtime)
	a := touch(t, dir, "access_json_a.log", mtime)

	files := NewCollector(nil).Collect(context.Background(), dir)

	assert.Equal(t, []string{a, b}, files)
}

func TestCollect_OverlappingPatternsDeduplicated(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := touch(t, dir, "access_json_1.log", time.Now())

	files := NewCollector([]string{"access_json_*.log", "*.log"}).Collect(context.Background(), dir)

	assert.Equal(t, []string{path}, files)
}

func TestCollect_MissingDirectory(t *testing.T) {
	t.Parallel()

	files := NewCollector(nil).Collect(context.Background(), filepath.Join(t.TempDir(), "nope"))

	assert.NotNil(t, files)
	assert.Empty(t, files)
}
