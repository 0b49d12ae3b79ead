package model

import "time"

// Snapshot is the materialized file set visible at one revision. It is
// derived, never stored: the same (entry, sequence) always folds to the
// same snapshot.
type Snapshot struct {
	Files       map[string]string `json:"files"`
	Sequence    int64             `json:"sequence"`
	Author      string            `json:"author,omitempty"`
	Description string            `json:"description"`
	CreatedAt   time.Time         `json:"created_at"`
	// Digest is a canonical hash of Files, used to check fold idempotence.
	Digest HashValue `json:"digest"`
}

// Clone returns a deep copy so cached snapshots cannot be mutated by callers.
func (s *Snapshot) Clone() *Snapshot {
	c := *s
	c.Files = make(map[string]string, len(s.Files))
	for k, v := range s.Files {
		c.Files[k] = v
	}
	return &c
}
