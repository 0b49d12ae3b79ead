// Package registry implements the entry registry: name-to-entry lookup,
// single-writer-per-entry discipline, input validation, and sequence
// assignment. It is the sole mutation gateway for revision logs.
package registry

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/revlog-project/revlog/internal/materialize"
	"github.com/revlog-project/revlog/internal/store"
	"github.com/revlog-project/revlog/pkg/errclass"
	"github.com/revlog-project/revlog/pkg/metrics"
	"github.com/revlog-project/revlog/pkg/model"
	"github.com/revlog-project/revlog/pkg/pathutil"
)

// Registry is process-wide shared state. The unit of mutual exclusion is
// one entry's revision log: creates and appends for a given name serialize
// on that entry's lock, so sequence assignment is race-free. Reads take a
// snapshot of the log under a read lock; revisions are immutable once
// appended.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*entryState
	store   store.Store
	metrics *metrics.Metrics
	clock   func() time.Time
}

type entryState struct {
	mu        sync.RWMutex
	record    model.EntryRecord
	revisions []*model.Revision

	// Memoized snapshots per sequence. Safe to cache forever: a snapshot
	// is a pure function of an immutable revision prefix.
	snapMu    sync.Mutex
	snapshots map[int64]*model.Snapshot
}

// Option configures a Registry.
type Option func(*Registry)

// WithMetrics wires Prometheus instrumentation into the registry.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Registry) { r.metrics = m }
}

// WithClock overrides the timestamp source, for tests.
func WithClock(clock func() time.Time) Option {
	return func(r *Registry) { r.clock = clock }
}

// Open builds a registry over the given store, loading all existing entry
// logs into memory. The store remains the durable source of truth; the
// registry writes through on every mutation.
func Open(st store.Store, opts ...Option) (*Registry, error) {
	r := &Registry{
		entries: make(map[string]*entryState),
		store:   st,
		clock:   time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}

	records, err := st.ListEntries()
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		revisions, err := st.Revisions(rec.Name)
		if err != nil {
			return nil, err
		}
		// An entry record always lands together with its sequence-1
		// revision; a record with an empty log is a half-written create.
		if len(revisions) == 0 {
			return nil, errclass.ErrStorageCorruption.WithMessagef(
				"entry %s: record exists but revision log is empty", rec.Name)
		}
		r.entries[rec.Name] = &entryState{
			record:    *rec,
			revisions: revisions,
			snapshots: make(map[int64]*model.Snapshot),
		}
	}
	return r, nil
}

// CreateEntry registers a new entry and appends its sequence-1 revision.
func (r *Registry) CreateEntry(name string, changes []model.FileChange, description, author string) (*model.Revision, error) {
	if err := pathutil.ValidateEntryName(name); err != nil {
		return nil, err
	}
	name = pathutil.NormalizeEntryName(name)
	if err := validateChanges(changes); err != nil {
		return nil, err
	}

	// The global lock covers the check-and-register step so two concurrent
	// creates of the same name cannot both win.
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[name]; ok {
		return nil, errclass.ErrAlreadyExists.WithMessagef("entry %s already exists", name)
	}

	now := r.clock().UTC()
	rev := &model.Revision{
		Sequence:    1,
		Author:      author,
		Description: description,
		Changes:     cloneChanges(changes),
		CreatedAt:   now,
	}
	rec := model.NewEntryRecord(name, now)

	start := r.clock()
	err := r.store.CreateEntry(rec, rev)
	r.metrics.ObserveAppend(r.clock().Sub(start), err)
	if err != nil {
		return nil, err
	}

	r.entries[name] = &entryState{
		record:    *rec,
		revisions: []*model.Revision{rev},
		snapshots: make(map[int64]*model.Snapshot),
	}
	return rev.Clone(), nil
}

// AppendRevision appends the next revision to an existing entry. Appends to
// the same entry serialize on the entry lock; the assigned sequence numbers
// are contiguous with no gaps or repeats.
func (r *Registry) AppendRevision(name string, changes []model.FileChange, description, author string) (*model.Revision, error) {
	if err := validateChanges(changes); err != nil {
		return nil, err
	}

	state, err := r.lookup(name)
	if err != nil {
		return nil, err
	}

	state.mu.Lock()
	defer state.mu.Unlock()

	rev := &model.Revision{
		Sequence:    int64(len(state.revisions)) + 1,
		Author:      author,
		Description: description,
		Changes:     cloneChanges(changes),
		CreatedAt:   r.clock().UTC(),
	}

	start := r.clock()
	err = r.store.AppendRevision(state.record.Name, rev)
	r.metrics.ObserveAppend(r.clock().Sub(start), err)
	if err != nil {
		return nil, err
	}

	state.revisions = append(state.revisions, rev)
	return rev.Clone(), nil
}

// Snapshot materializes the file set at the given sequence; sequence 0
// means latest. Results are memoized per (entry, sequence).
func (r *Registry) Snapshot(name string, sequence int64) (*model.Snapshot, error) {
	state, err := r.lookup(name)
	if err != nil {
		return nil, err
	}

	revisions := state.log()
	if sequence == 0 {
		sequence = int64(len(revisions))
	}

	state.snapMu.Lock()
	cached, ok := state.snapshots[sequence]
	state.snapMu.Unlock()
	if ok {
		r.metrics.ObserveMaterialize(true)
		return cached.Clone(), nil
	}

	snap, err := materialize.At(revisions, sequence)
	if err != nil {
		return nil, err
	}
	r.metrics.ObserveMaterialize(false)

	state.snapMu.Lock()
	state.snapshots[sequence] = snap
	state.snapMu.Unlock()
	return snap.Clone(), nil
}

// History returns the entry's revision metadata in chronological order.
func (r *Registry) History(name string) ([]model.RevisionMeta, error) {
	state, err := r.lookup(name)
	if err != nil {
		return nil, err
	}

	revisions := state.log()
	out := make([]model.RevisionMeta, len(revisions))
	for i, rev := range revisions {
		out[i] = rev.Meta()
	}
	return out, nil
}

// RevisionAt returns the full revision at the given sequence.
func (r *Registry) RevisionAt(name string, sequence int64) (*model.Revision, error) {
	state, err := r.lookup(name)
	if err != nil {
		return nil, err
	}

	revisions := state.log()
	if sequence < 1 || sequence > int64(len(revisions)) {
		return nil, errclass.ErrRevisionNotFound.WithMessagef(
			"revision %d out of range [1, %d]", sequence, len(revisions))
	}
	return revisions[sequence-1].Clone(), nil
}

// GetEntry returns listing info for one entry.
func (r *Registry) GetEntry(name string) (*model.EntryInfo, error) {
	state, err := r.lookup(name)
	if err != nil {
		return nil, err
	}
	return state.info(), nil
}

// ListEntries returns listing info for all entries, most recently updated
// first (the original index page ordering).
func (r *Registry) ListEntries() []*model.EntryInfo {
	r.mu.RLock()
	states := make([]*entryState, 0, len(r.entries))
	for _, state := range r.entries {
		states = append(states, state)
	}
	r.mu.RUnlock()

	out := make([]*model.EntryInfo, 0, len(states))
	for _, state := range states {
		out = append(out, state.info())
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Verify re-reads an entry's durable log and checks it against the
// in-memory state. A corrupted log surfaces as ErrStorageCorruption.
func (r *Registry) Verify(name string) error {
	state, err := r.lookup(name)
	if err != nil {
		return err
	}

	stored, err := r.store.Revisions(state.record.Name)
	if err != nil {
		return err
	}
	if len(stored) < len(state.log()) {
		return errclass.ErrStorageCorruption.WithMessagef(
			"entry %s: durable log has %d revisions, expected %d", name, len(stored), len(state.log()))
	}
	return nil
}

func (r *Registry) lookup(name string) (*entryState, error) {
	name = pathutil.NormalizeEntryName(name)
	r.mu.RLock()
	state, ok := r.entries[name]
	r.mu.RUnlock()
	if !ok {
		return nil, errclass.ErrNotFound.WithMessagef("entry %s not found", name)
	}
	return state, nil
}

// log returns a consistent view of the revision log. The slice header is
// copied under the read lock; the revisions themselves are immutable.
func (s *entryState) log() []*model.Revision {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revisions[:len(s.revisions):len(s.revisions)]
}

func (s *entryState) info() *model.EntryInfo {
	revisions := s.log()
	latest := revisions[len(revisions)-1]
	return &model.EntryInfo{
		Name:              s.record.Name,
		EntryID:           s.record.EntryID,
		CreatedAt:         s.record.CreatedAt,
		RevisionCount:     int64(len(revisions)),
		LatestDescription: latest.Description,
		LatestAuthor:      latest.Author,
		UpdatedAt:         latest.CreatedAt,
	}
}

func validateChanges(changes []model.FileChange) error {
	if len(changes) == 0 {
		return errclass.ErrInvalidChange.WithMessage("change list must not be empty")
	}
	seen := make(map[string]struct{}, len(changes))
	for _, change := range changes {
		if strings.TrimSpace(change.Filename) == "" {
			return errclass.ErrInvalidChange.WithMessage("filename must not be blank")
		}
		if _, dup := seen[change.Filename]; dup {
			return errclass.ErrInvalidChange.WithMessagef("duplicate filename %s in one revision", change.Filename)
		}
		seen[change.Filename] = struct{}{}
	}
	return nil
}

func cloneChanges(changes []model.FileChange) []model.FileChange {
	out := make([]model.FileChange, len(changes))
	copy(out, changes)
	return out
}
