package comment_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/revlog-project/revlog/internal/comment"
	"github.com/revlog-project/revlog/internal/registry"
	"github.com/revlog-project/revlog/internal/store"
	"github.com/revlog-project/revlog/pkg/errclass"
	"github.com/revlog-project/revlog/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*registry.Registry, *comment.Log) {
	t.Helper()
	st := store.NewMemStore()
	r, err := registry.Open(st)
	require.NoError(t, err)
	return r, comment.NewLog(st)
}

func TestAdd(t *testing.T) {
	r, log := setup(t)

	_, err := r.CreateEntry("repo1", []model.FileChange{{Filename: "a.txt", Document: "x"}}, "r1", "")
	require.NoError(t, err)

	c, err := log.Add("repo1", "nice snippet")
	require.NoError(t, err)
	assert.Equal(t, "repo1", c.EntryName)
	assert.Equal(t, "nice snippet", c.Text)
	assert.False(t, c.CreatedAt.IsZero())
}

func TestAdd_MissingEntry(t *testing.T) {
	_, log := setup(t)

	_, err := log.Add("ghost", "hello")
	require.ErrorIs(t, err, errclass.ErrNotFound)
}

func TestAdd_InvalidName(t *testing.T) {
	// The file backend turns names into paths, so a bad name must never
	// reach the store.
	root := t.TempDir()
	st, err := store.NewFileStore(root)
	require.NoError(t, err)
	log := comment.NewLog(st)

	for _, name := range []string{"../outside", "a/b", ".", ""} {
		_, err := log.Add(name, "sneaky")
		require.ErrorIs(t, err, errclass.ErrNameInvalid, "%q", name)
		_, err = log.List(name)
		require.ErrorIs(t, err, errclass.ErrNameInvalid, "%q", name)
	}

	// Nothing was written outside the entries directory.
	_, err = os.Stat(filepath.Join(root, ".revlog", "outside"))
	require.True(t, os.IsNotExist(err))
}

func TestAdd_BlankText(t *testing.T) {
	r, log := setup(t)

	_, err := r.CreateEntry("repo1", []model.FileChange{{Filename: "a.txt", Document: "x"}}, "r1", "")
	require.NoError(t, err)

	for _, text := range []string{"", "   ", "\t\n"} {
		_, err := log.Add("repo1", text)
		require.ErrorIs(t, err, errclass.ErrInvalidComment, "%q", text)
	}
}

func TestList_InsertionOrderAcrossInterleavedAppends(t *testing.T) {
	r, log := setup(t)

	_, err := r.CreateEntry("repo1", []model.FileChange{{Filename: "a.txt", Document: "x"}}, "r1", "")
	require.NoError(t, err)

	_, err = log.Add("repo1", "first")
	require.NoError(t, err)
	_, err = r.AppendRevision("repo1", []model.FileChange{{Filename: "a.txt", Document: "y"}}, "r2", "")
	require.NoError(t, err)
	_, err = log.Add("repo1", "second")
	require.NoError(t, err)

	comments, err := log.List("repo1")
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].Text)
	assert.Equal(t, "second", comments[1].Text)
}

func TestComments_NeverAffectSnapshots(t *testing.T) {
	r, log := setup(t)

	_, err := r.CreateEntry("repo1", []model.FileChange{{Filename: "a.txt", Document: "x"}}, "r1", "")
	require.NoError(t, err)

	before, err := r.Snapshot("repo1", 1)
	require.NoError(t, err)

	for _, text := range []string{"one", "two", "three"} {
		_, err := log.Add("repo1", text)
		require.NoError(t, err)
	}
	_, err = r.AppendRevision("repo1", []model.FileChange{{Filename: "a.txt", Document: "y"}}, "r2", "")
	require.NoError(t, err)

	after, err := r.Snapshot("repo1", 1)
	require.NoError(t, err)
	assert.Equal(t, before.Files, after.Files)
	assert.Equal(t, before.Digest, after.Digest)

	second, err := r.Snapshot("repo1", 2)
	require.NoError(t, err)
	assert.Equal(t, "y", second.Files["a.txt"])
}

func TestList_MissingEntry(t *testing.T) {
	_, log := setup(t)

	_, err := log.List("ghost")
	require.ErrorIs(t, err, errclass.ErrNotFound)
}
