package store

import (
	"sync"

	"github.com/revlog-project/revlog/pkg/errclass"
	"github.com/revlog-project/revlog/pkg/model"
)

// MemStore is an in-memory Store for tests and ephemeral use.
type MemStore struct {
	mu        sync.RWMutex
	entries   map[string]*model.EntryRecord
	revisions map[string][]*model.Revision
	comments  map[string][]*model.Comment
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		entries:   make(map[string]*model.EntryRecord),
		revisions: make(map[string][]*model.Revision),
		comments:  make(map[string][]*model.Comment),
	}
}

func (s *MemStore) CreateEntry(rec *model.EntryRecord, first *model.Revision) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[rec.Name]; ok {
		return errclass.ErrAlreadyExists.WithMessagef("entry %s already exists", rec.Name)
	}
	cp := *rec
	s.entries[rec.Name] = &cp
	s.revisions[rec.Name] = []*model.Revision{first.Clone()}
	return nil
}

func (s *MemStore) GetEntry(name string) (*model.EntryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.entries[name]
	if !ok {
		return nil, errclass.ErrNotFound.WithMessagef("entry %s not found", name)
	}
	cp := *rec
	return &cp, nil
}

func (s *MemStore) ListEntries() ([]*model.EntryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*model.EntryRecord, 0, len(s.entries))
	for _, rec := range s.entries {
		cp := *rec
		out = append(out, &cp)
	}
	return out, nil
}

func (s *MemStore) AppendRevision(name string, rev *model.Revision) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[name]; !ok {
		return errclass.ErrNotFound.WithMessagef("entry %s not found", name)
	}
	s.revisions[name] = append(s.revisions[name], rev.Clone())
	return nil
}

func (s *MemStore) Revisions(name string) ([]*model.Revision, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.entries[name]; !ok {
		return nil, errclass.ErrNotFound.WithMessagef("entry %s not found", name)
	}
	log := s.revisions[name]
	out := make([]*model.Revision, len(log))
	for i, rev := range log {
		out[i] = rev.Clone()
	}
	return out, nil
}

func (s *MemStore) AppendComment(c *model.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[c.EntryName]; !ok {
		return errclass.ErrNotFound.WithMessagef("entry %s not found", c.EntryName)
	}
	cp := *c
	s.comments[c.EntryName] = append(s.comments[c.EntryName], &cp)
	return nil
}

func (s *MemStore) Comments(name string) ([]*model.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.entries[name]; !ok {
		return nil, errclass.ErrNotFound.WithMessagef("entry %s not found", name)
	}
	log := s.comments[name]
	out := make([]*model.Comment, len(log))
	for i, c := range log {
		cp := *c
		out[i] = &cp
	}
	return out, nil
}

func (s *MemStore) Close() error { return nil }
