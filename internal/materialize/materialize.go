// Package materialize folds a prefix of an entry's revision log into the
// file set visible at that point. The fold is pure: the same revision
// prefix always produces the same snapshot.
package materialize

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/revlog-project/revlog/pkg/errclass"
	"github.com/revlog-project/revlog/pkg/jsonutil"
	"github.com/revlog-project/revlog/pkg/model"
)

// At folds revisions 1..seq of the given chronological log and returns the
// resulting snapshot, carrying the metadata of revision seq.
func At(revisions []*model.Revision, seq int64) (*model.Snapshot, error) {
	last := int64(len(revisions))
	if seq < 1 || seq > last {
		return nil, errclass.ErrRevisionNotFound.WithMessagef(
			"revision %d out of range [1, %d]", seq, last)
	}

	files := make(map[string]string)
	for _, rev := range revisions[:seq] {
		for _, change := range rev.Changes {
			if change.Removed {
				// Removing a file that was never present is a no-op.
				delete(files, change.Filename)
				continue
			}
			files[change.Filename] = change.Document
		}
	}

	target := revisions[seq-1]
	digest, err := digest(files)
	if err != nil {
		return nil, fmt.Errorf("snapshot digest: %w", err)
	}

	return &model.Snapshot{
		Files:       files,
		Sequence:    target.Sequence,
		Author:      target.Author,
		Description: target.Description,
		CreatedAt:   target.CreatedAt,
		Digest:      digest,
	}, nil
}

// Latest folds the whole log.
func Latest(revisions []*model.Revision) (*model.Snapshot, error) {
	return At(revisions, int64(len(revisions)))
}

func digest(files map[string]string) (model.HashValue, error) {
	data, err := jsonutil.CanonicalMarshal(files)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return model.HashValue(hex.EncodeToString(sum[:])), nil
}
