package model

import "time"

// FileChange is one line-item inside a revision: either a full-content
// replacement for Filename or, when Removed is set, its deletion.
type FileChange struct {
	Filename string `json:"filename"`
	Document string `json:"document,omitempty"`
	Removed  bool   `json:"removed,omitempty"`
}

// Revision is one immutable change set in an entry's log. Sequence numbers
// are contiguous starting at 1 and assigned solely at append time.
// Author "" means anonymous.
type Revision struct {
	Sequence    int64        `json:"sequence"`
	Author      string       `json:"author,omitempty"`
	Description string       `json:"description"`
	Changes     []FileChange `json:"changes"`
	CreatedAt   time.Time    `json:"created_at"`
}

// Clone returns a deep copy so callers cannot alias the stored log.
func (r *Revision) Clone() *Revision {
	c := *r
	c.Changes = make([]FileChange, len(r.Changes))
	copy(c.Changes, r.Changes)
	return &c
}

// RevisionMeta is the history-listing view of a revision, without file
// contents.
type RevisionMeta struct {
	Sequence    int64     `json:"sequence"`
	Author      string    `json:"author,omitempty"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// Meta returns the metadata view of the revision.
func (r *Revision) Meta() RevisionMeta {
	return RevisionMeta{
		Sequence:    r.Sequence,
		Author:      r.Author,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
	}
}
