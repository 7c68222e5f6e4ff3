package index

import (
	"context"
	"time"

	"github.com/Cyclone1070/workbench/internal/config"
)

// FindFileRequest asks for files whose name or path matches a query.
type FindFileRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

// Validate checks the request and applies the configured default limit.
func (r *FindFileRequest) Validate(cfg *config.Config) error {
	if r.Query == "" {
		return ErrQueryRequired
	}
	if r.Limit <= 0 {
		r.Limit = cfg.Tools.DefaultSearchLimit
	}
	if r.Limit > cfg.Tools.MaxSearchLimit {
		r.Limit = cfg.Tools.MaxSearchLimit
	}
	return nil
}

// FindFileResponse lists search hits, best first.
type FindFileResponse struct {
	Matches []Match `json:"matches"`
	Total   int     `json:"total"`
	BuiltAt string  `json:"index_built_at"`
}

// FindFileTool searches the current catalog snapshot.
type FindFileTool struct {
	store *Store
	cfg   *config.Config
}

// NewFindFileTool creates a find-file tool backed by the given store.
func NewFindFileTool(store *Store, cfg *config.Config) *FindFileTool {
	if store == nil {
		panic("store is required")
	}
	if cfg == nil {
		panic("cfg is required")
	}
	return &FindFileTool{store: store, cfg: cfg}
}

// Run executes the search against the current snapshot.
func (t *FindFileTool) Run(req *FindFileRequest) (*FindFileResponse, error) {
	if err := req.Validate(t.cfg); err != nil {
		return nil, err
	}
	catalog := t.store.Load()
	if catalog == nil {
		return nil, ErrIndexNotBuilt
	}
	matches := Search(catalog, req.Query, req.Limit)
	return &FindFileResponse{
		Matches: matches,
		Total:   len(matches),
		BuiltAt: catalog.BuiltAt.UTC().Format(time.RFC3339),
	}, nil
}

// RefreshIndexResponse reports the outcome of a rebuild.
type RefreshIndexResponse struct {
	Files    int    `json:"files"`
	Duration string `json:"duration"`
}

// RefreshIndexTool rebuilds the catalog and swaps it into the store.
type RefreshIndexTool struct {
	indexer *Indexer
	store   *Store
}

// NewRefreshIndexTool creates a refresh tool.
func NewRefreshIndexTool(indexer *Indexer, store *Store) *RefreshIndexTool {
	if indexer == nil {
		panic("indexer is required")
	}
	if store == nil {
		panic("store is required")
	}
	return &RefreshIndexTool{indexer: indexer, store: store}
}

// Run rebuilds the index. The old snapshot stays visible to readers
// until the new one is complete.
func (t *RefreshIndexTool) Run(ctx context.Context) (*RefreshIndexResponse, error) {
	start := time.Now()
	catalog, err := t.indexer.Build(ctx)
	if err != nil {
		return nil, err
	}
	t.store.Swap(catalog)
	return &RefreshIndexResponse{
		Files:    catalog.Len(),
		Duration: time.Since(start).Round(time.Millisecond).String(),
	}, nil
}
