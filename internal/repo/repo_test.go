package repo_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/revlog-project/revlog/internal/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	dir := t.TempDir()

	r, err := repo.Init(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, r.Root)
	assert.Equal(t, 1, r.FormatVersion)
	assert.NotEmpty(t, r.RepoID)

	// format_version, repo_id and default config exist.
	for _, name := range []string{"format_version", "repo_id", "config.yaml"} {
		_, err := os.Stat(filepath.Join(dir, ".revlog", name))
		assert.NoError(t, err, name)
	}
}

func TestInit_Twice(t *testing.T) {
	dir := t.TempDir()

	_, err := repo.Init(dir)
	require.NoError(t, err)
	_, err = repo.Init(dir)
	assert.Error(t, err)
}

func TestDiscover_FromNestedDir(t *testing.T) {
	dir := t.TempDir()
	r, err := repo.Init(dir)
	require.NoError(t, err)

	nested := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))

	found, err := repo.Discover(nested)
	require.NoError(t, err)
	assert.Equal(t, dir, found.Root)
	assert.Equal(t, r.RepoID, found.RepoID)
}

func TestDiscover_NotFound(t *testing.T) {
	_, err := repo.Discover(t.TempDir())
	assert.Error(t, err)
}

func TestDiscover_UnsupportedFormatVersion(t *testing.T) {
	dir := t.TempDir()
	_, err := repo.Init(dir)
	require.NoError(t, err)

	path := filepath.Join(dir, ".revlog", "format_version")
	require.NoError(t, os.WriteFile(path, []byte("99\n"), 0644))

	_, err = repo.Discover(dir)
	assert.Error(t, err)
}
