package model

import (
	"time"

	"github.com/google/uuid"
)

// EntryRecord is the persisted identity of an entry. The revision log and
// comment log hang off the entry name; the record itself never changes
// after creation.
type EntryRecord struct {
	Name      string    `json:"name"`
	EntryID   string    `json:"entry_id"`
	CreatedAt time.Time `json:"created_at"`
}

// NewEntryRecord creates a record with a fresh entry ID.
func NewEntryRecord(name string, now time.Time) *EntryRecord {
	return &EntryRecord{
		Name:      name,
		EntryID:   uuid.NewString(),
		CreatedAt: now.UTC(),
	}
}

// EntryInfo is the listing view of an entry: identity plus metadata of its
// latest revision, enough for an index page.
type EntryInfo struct {
	Name              string    `json:"name"`
	EntryID           string    `json:"entry_id"`
	CreatedAt         time.Time `json:"created_at"`
	RevisionCount     int64     `json:"revision_count"`
	LatestDescription string    `json:"latest_description"`
	LatestAuthor      string    `json:"latest_author,omitempty"`
	UpdatedAt         time.Time `json:"updated_at"`
}
