package revlog

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/revlog-project/revlog/internal/comment"
	"github.com/revlog-project/revlog/internal/registry"
	"github.com/revlog-project/revlog/internal/repo"
	"github.com/revlog-project/revlog/internal/store"
	"github.com/revlog-project/revlog/pkg/config"
	"github.com/revlog-project/revlog/pkg/metrics"
	"github.com/revlog-project/revlog/pkg/model"
)

// Client provides the external operation contract over one data root.
type Client struct {
	root     string
	repoID   string
	store    store.Store
	registry *registry.Registry
	comments *comment.Log
	gatherer prometheus.Gatherer
}

// Options configures client construction.
type Options struct {
	// Backend overrides the configured store backend; empty uses the
	// config file (default "file").
	Backend model.StoreBackend
}

// Init initializes a new data root at path and opens a client over it.
func Init(path string, opts Options) (*Client, error) {
	if _, err := repo.Init(path); err != nil {
		return nil, fmt.Errorf("revlog init: %w", err)
	}
	return Open(path, opts)
}

// Open opens an existing data root at or above path.
func Open(path string, opts Options) (*Client, error) {
	r, err := repo.Discover(path)
	if err != nil {
		return nil, fmt.Errorf("revlog open: %w", err)
	}

	cfg, err := config.Load(r.Root)
	if err != nil {
		return nil, fmt.Errorf("revlog open: %w", err)
	}

	backend := opts.Backend
	if backend == "" {
		backend = model.StoreBackend(cfg.Store.Backend)
	}

	st, err := store.Open(backend, r.Root)
	if err != nil {
		return nil, fmt.Errorf("revlog open store: %w", err)
	}

	var (
		m        *metrics.Metrics
		gatherer prometheus.Gatherer
	)
	if cfg.Metrics.Enabled {
		promReg := prometheus.NewRegistry()
		m = metrics.New(promReg)
		gatherer = promReg
	}

	reg, err := registry.Open(st, registry.WithMetrics(m))
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("revlog load registry: %w", err)
	}

	return &Client{
		root:     r.Root,
		repoID:   r.RepoID,
		store:    st,
		registry: reg,
		comments: comment.NewLog(st, comment.WithMetrics(m)),
		gatherer: gatherer,
	}, nil
}

// Root returns the data root path.
func (c *Client) Root() string { return c.root }

// RepoID returns the data root's unique ID.
func (c *Client) RepoID() string { return c.repoID }

// Gatherer returns the Prometheus gatherer when metrics are enabled, else
// nil.
func (c *Client) Gatherer() prometheus.Gatherer { return c.gatherer }

// CreateEntry creates a named entry with its sequence-1 revision.
func (c *Client) CreateEntry(_ context.Context, name string, changes []model.FileChange, description, author string) (*model.Revision, error) {
	return c.registry.CreateEntry(name, changes, description, author)
}

// UpdateEntry appends the next revision to an existing entry.
func (c *Client) UpdateEntry(_ context.Context, name string, changes []model.FileChange, description, author string) (*model.Revision, error) {
	return c.registry.AppendRevision(name, changes, description, author)
}

// GetSnapshot materializes the file set at the given sequence; sequence 0
// means latest.
func (c *Client) GetSnapshot(_ context.Context, name string, sequence int64) (*model.Snapshot, error) {
	return c.registry.Snapshot(name, sequence)
}

// GetHistory returns revision metadata in chronological order.
func (c *Client) GetHistory(_ context.Context, name string) ([]model.RevisionMeta, error) {
	return c.registry.History(name)
}

// GetRevision returns the full revision at the given sequence.
func (c *Client) GetRevision(_ context.Context, name string, sequence int64) (*model.Revision, error) {
	return c.registry.RevisionAt(name, sequence)
}

// GetEntry returns listing info for one entry.
func (c *Client) GetEntry(_ context.Context, name string) (*model.EntryInfo, error) {
	return c.registry.GetEntry(name)
}

// ListEntries returns listing info for all entries, most recently updated
// first.
func (c *Client) ListEntries(_ context.Context) []*model.EntryInfo {
	return c.registry.ListEntries()
}

// AddComment appends a comment to an entry's comment log.
func (c *Client) AddComment(_ context.Context, name, text string) (*model.Comment, error) {
	return c.comments.Add(name, text)
}

// ListComments returns an entry's comments in insertion order.
func (c *Client) ListComments(_ context.Context, name string) ([]*model.Comment, error) {
	return c.comments.List(name)
}

// Verify re-reads an entry's durable log and checks its integrity.
func (c *Client) Verify(_ context.Context, name string) error {
	return c.registry.Verify(name)
}

// Close releases the underlying store.
func (c *Client) Close() error {
	return c.store.Close()
}
