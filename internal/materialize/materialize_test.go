package materialize_test

import (
	"testing"
	"time"

	"github.com/revlog-project/revlog/internal/materialize"
	"github.com/revlog-project/revlog/pkg/errclass"
	"github.com/revlog-project/revlog/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rev(seq int64, changes ...model.FileChange) *model.Revision {
	return &model.Revision{
		Sequence:    seq,
		Description: "r",
		Changes:     changes,
		CreatedAt:   time.Unix(1700000000+seq, 0).UTC(),
	}
}

func put(name, doc string) model.FileChange {
	return model.FileChange{Filename: name, Document: doc}
}

func remove(name string) model.FileChange {
	return model.FileChange{Filename: name, Removed: true}
}

func TestAt_FoldCorrectness(t *testing.T) {
	log := []*model.Revision{
		rev(1, put("a.txt", "x")),
		rev(2, put("a.txt", "y"), put("b.txt", "z")),
		rev(3, remove("a.txt")),
	}

	s1, err := materialize.At(log, 1)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a.txt": "x"}, s1.Files)

	s2, err := materialize.At(log, 2)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a.txt": "y", "b.txt": "z"}, s2.Files)

	s3, err := materialize.At(log, 3)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"b.txt": "z"}, s3.Files)
	assert.Equal(t, int64(3), s3.Sequence)
}

func TestAt_RemovalOfAbsentFileIsNoop(t *testing.T) {
	log := []*model.Revision{rev(1, remove("c.txt"))}

	s, err := materialize.At(log, 1)
	require.NoError(t, err)
	assert.Empty(t, s.Files)
}

func TestAt_OrderWithinRevision(t *testing.T) {
	// Changes apply in listed order: a put after a remove of the same file
	// leaves the file present.
	log := []*model.Revision{rev(1, remove("a.txt"), put("a.txt", "back"))}

	s, err := materialize.At(log, 1)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a.txt": "back"}, s.Files)
}

func TestAt_Idempotent(t *testing.T) {
	log := []*model.Revision{
		rev(1, put("a.txt", "x"), put("b.txt", "y")),
		rev(2, remove("b.txt")),
	}

	first, err := materialize.At(log, 2)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := materialize.At(log, 2)
		require.NoError(t, err)
		assert.Equal(t, first.Files, again.Files)
		assert.Equal(t, first.Digest, again.Digest)
	}
}

func TestAt_OutOfRange(t *testing.T) {
	log := []*model.Revision{rev(1, put("a.txt", "x")), rev(2, put("a.txt", "y"))}

	_, err := materialize.At(log, 99)
	require.ErrorIs(t, err, errclass.ErrRevisionNotFound)

	_, err = materialize.At(log, 0)
	require.ErrorIs(t, err, errclass.ErrRevisionNotFound)

	_, err = materialize.At(log, -1)
	require.ErrorIs(t, err, errclass.ErrRevisionNotFound)
}

func TestLatest(t *testing.T) {
	log := []*model.Revision{
		rev(1, put("a.txt", "x")),
		rev(2, put("a.txt", "y")),
	}

	s, err := materialize.Latest(log)
	require.NoError(t, err)
	assert.Equal(t, int64(2), s.Sequence)
	assert.Equal(t, "y", s.Files["a.txt"])
}

func TestLatest_EmptyLog(t *testing.T) {
	_, err := materialize.Latest(nil)
	require.ErrorIs(t, err, errclass.ErrRevisionNotFound)
}

func TestAt_DigestDiffersAcrossContent(t *testing.T) {
	log := []*model.Revision{
		rev(1, put("a.txt", "x")),
		rev(2, put("a.txt", "y")),
	}

	s1, err := materialize.At(log, 1)
	require.NoError(t, err)
	s2, err := materialize.At(log, 2)
	require.NoError(t, err)
	assert.NotEqual(t, s1.Digest, s2.Digest)
}
