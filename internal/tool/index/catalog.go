package index

import (
	"sync/atomic"
	"time"
)

// Entry describes a single indexed file.
type Entry struct {
	RelativePath string `json:"relative_path"`
	Name         string `json:"name"`
	Extension    string `json:"extension"`
	Size         int64  `json:"size"`
	ModTime      int64  `json:"mod_time_ms"`
	Priority     int    `json:"priority"`
}

// Catalog is an immutable snapshot of the workspace file index.
// Entries are keyed by workspace-relative path with forward slashes.
type Catalog struct {
	Entries map[string]Entry
	BuiltAt time.Time
}

// Len returns the number of indexed files.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Entries)
}

// Store holds the current catalog snapshot. Readers always see a complete
// catalog; a rebuild swaps in the new snapshot in one step.
type Store struct {
	current atomic.Pointer[Catalog]
}

// NewStore creates an empty store with no catalog loaded.
func NewStore() *Store {
	return &Store{}
}

// Load returns the current catalog, or nil if no index has been built yet.
func (s *Store) Load() *Catalog {
	return s.current.Load()
}

// Swap replaces the current catalog with the given snapshot.
func (s *Store) Swap(catalog *Catalog) {
	s.current.Store(catalog)
}
