package store_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/revlog-project/revlog/internal/store"
	"github.com/revlog-project/revlog/pkg/errclass"
	"github.com/revlog-project/revlog/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_ReopenRecoversLog(t *testing.T) {
	root := t.TempDir()

	fs, err := store.NewFileStore(root)
	require.NoError(t, err)
	require.NoError(t, fs.CreateEntry(model.NewEntryRecord("repo1", time.Now()), testRevision(1, "r1")))
	require.NoError(t, fs.AppendRevision("repo1", testRevision(2, "r2")))
	require.NoError(t, fs.AppendComment(&model.Comment{EntryName: "repo1", Text: "hi", CreatedAt: time.Now().UTC()}))
	require.NoError(t, fs.Close())

	reopened, err := store.NewFileStore(root)
	require.NoError(t, err)

	revs, err := reopened.Revisions("repo1")
	require.NoError(t, err)
	require.Len(t, revs, 2)
	assert.Equal(t, "r2", revs[1].Description)

	comments, err := reopened.Comments("repo1")
	require.NoError(t, err)
	require.Len(t, comments, 1)
}

func revisionLogPath(root string) string {
	return filepath.Join(root, ".revlog", "entries", "repo1", "revisions.jsonl")
}

func TestFileStore_TamperedRecordIsCorruption(t *testing.T) {
	root := t.TempDir()
	fs, err := store.NewFileStore(root)
	require.NoError(t, err)
	require.NoError(t, fs.CreateEntry(model.NewEntryRecord("repo1", time.Now()), testRevision(1, "r1")))
	require.NoError(t, fs.AppendRevision("repo1", testRevision(2, "r2")))

	path := revisionLogPath(root)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	tampered := strings.Replace(string(data), `"description":"r1"`, `"description":"rX"`, 1)
	require.NotEqual(t, string(data), tampered)
	require.NoError(t, os.WriteFile(path, []byte(tampered), 0644))

	_, err = fs.Revisions("repo1")
	require.ErrorIs(t, err, errclass.ErrStorageCorruption)
}

func TestFileStore_TruncatedLogIsCorruption(t *testing.T) {
	root := t.TempDir()
	fs, err := store.NewFileStore(root)
	require.NoError(t, err)
	require.NoError(t, fs.CreateEntry(model.NewEntryRecord("repo1", time.Now()), testRevision(1, "r1")))
	require.NoError(t, fs.AppendRevision("repo1", testRevision(2, "r2")))

	// Drop the first line: the chain no longer starts at an empty prev hash.
	path := revisionLogPath(root)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.SplitAfter(string(data), "\n")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines[1:], "")), 0644))

	_, err = fs.Revisions("repo1")
	require.ErrorIs(t, err, errclass.ErrStorageCorruption)
}

func TestFileStore_GarbageLineIsCorruption(t *testing.T) {
	root := t.TempDir()
	fs, err := store.NewFileStore(root)
	require.NoError(t, err)
	require.NoError(t, fs.CreateEntry(model.NewEntryRecord("repo1", time.Now()), testRevision(1, "r1")))

	f, err := os.OpenFile(revisionLogPath(root), os.O_WRONLY|os.O_APPEND, 0644)
	require.NoError(t, err)
	_, err = f.WriteString("not json\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, err = fs.Revisions("repo1")
	require.ErrorIs(t, err, errclass.ErrStorageCorruption)
}

func TestFileStore_CorruptEntryRecord(t *testing.T) {
	root := t.TempDir()
	fs, err := store.NewFileStore(root)
	require.NoError(t, err)
	require.NoError(t, fs.CreateEntry(model.NewEntryRecord("repo1", time.Now()), testRevision(1, "r1")))

	recPath := filepath.Join(root, ".revlog", "entries", "repo1", "entry.json")
	require.NoError(t, os.WriteFile(recPath, []byte("{broken"), 0644))

	_, err = fs.GetEntry("repo1")
	require.ErrorIs(t, err, errclass.ErrStorageCorruption)
}
