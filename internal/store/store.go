// Package store defines the narrow persistence boundary for entries,
// revision logs and comment logs, plus its backends. The reference layout
// is one durable ordered log per entry name.
package store

import (
	"fmt"

	"github.com/revlog-project/revlog/pkg/model"
)

// Store persists entries, their append-only revision logs, and their
// comment logs. Implementations must keep both logs in insertion order.
//
// Callers are responsible for serializing revision appends per entry;
// implementations only need to be safe for concurrent use.
type Store interface {
	// CreateEntry persists a new entry together with its first revision.
	// Fails with errclass.ErrAlreadyExists if the name is taken.
	CreateEntry(rec *model.EntryRecord, first *model.Revision) error

	// GetEntry returns the entry record, or errclass.ErrNotFound.
	GetEntry(name string) (*model.EntryRecord, error)

	// ListEntries returns all entry records in no particular order.
	ListEntries() ([]*model.EntryRecord, error)

	// AppendRevision appends a revision to an existing entry's log.
	AppendRevision(name string, rev *model.Revision) error

	// Revisions returns the full chronological revision log of an entry.
	// A log that fails integrity checks yields errclass.ErrStorageCorruption.
	Revisions(name string) ([]*model.Revision, error)

	// AppendComment appends a comment to an existing entry's comment log.
	AppendComment(c *model.Comment) error

	// Comments returns an entry's comments in insertion order.
	Comments(name string) ([]*model.Comment, error)

	Close() error
}

// Open constructs the store selected by backend, rooted at root.
func Open(backend model.StoreBackend, root string) (Store, error) {
	switch backend {
	case model.BackendFile, "":
		return NewFileStore(root)
	case model.BackendBadger:
		return NewBadgerStore(BadgerConfig{Root: root})
	case model.BackendMemory:
		return NewMemStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
}
