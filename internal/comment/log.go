// Package comment implements the per-entry comment log. Comments live
// outside the revision chain: they never affect snapshot materialization,
// and comment writes need no coordination with revision writes.
package comment

import (
	"strings"
	"time"

	"github.com/revlog-project/revlog/internal/store"
	"github.com/revlog-project/revlog/pkg/errclass"
	"github.com/revlog-project/revlog/pkg/metrics"
	"github.com/revlog-project/revlog/pkg/model"
	"github.com/revlog-project/revlog/pkg/pathutil"
)

// Log appends and lists comments through the store.
type Log struct {
	store   store.Store
	metrics *metrics.Metrics
	clock   func() time.Time
}

// Option configures a Log.
type Option func(*Log)

// WithMetrics wires Prometheus instrumentation into the log.
func WithMetrics(m *metrics.Metrics) Option {
	return func(l *Log) { l.metrics = m }
}

// WithClock overrides the timestamp source, for tests.
func WithClock(clock func() time.Time) Option {
	return func(l *Log) { l.clock = clock }
}

// NewLog creates a comment log over the given store.
func NewLog(st store.Store, opts ...Option) *Log {
	l := &Log{store: st, clock: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Add appends a comment to an existing entry. The name is validated before
// it reaches the store, where it becomes a storage key.
func (l *Log) Add(entryName, text string) (*model.Comment, error) {
	if err := pathutil.ValidateEntryName(entryName); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, errclass.ErrInvalidComment.WithMessage("comment text must not be blank")
	}

	c := &model.Comment{
		EntryName: pathutil.NormalizeEntryName(entryName),
		Text:      text,
		CreatedAt: l.clock().UTC(),
	}
	if err := l.store.AppendComment(c); err != nil {
		return nil, err
	}
	l.metrics.ObserveComment()

	cp := *c
	return &cp, nil
}

// List returns an entry's comments in insertion order.
func (l *Log) List(entryName string) ([]*model.Comment, error) {
	if err := pathutil.ValidateEntryName(entryName); err != nil {
		return nil, err
	}
	return l.store.Comments(pathutil.NormalizeEntryName(entryName))
}
