package model

import "time"

// Comment is a free-standing note attached to an entry, independent of the
// revision chain. Comments are append-only and insertion-ordered.
type Comment struct {
	EntryName string    `json:"entry_name"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
