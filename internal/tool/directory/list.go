package directory

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"sort"

	"github.com/Cyclone1070/workbench/internal/config"
)

// -- Sentinels --

var (
	ErrPathRequired  = errors.New("path is required")
	ErrFileMissing   = errors.New("path does not exist")
	ErrNotADirectory = errors.New("path is not a directory")
	ErrDirExists     = errors.New("directory already exists")
)

// fileSystem defines the minimal filesystem interface needed by directory tools.
type fileSystem interface {
	Stat(path string) (os.FileInfo, error)
	ListDir(path string) ([]os.FileInfo, error)
	MkdirAll(path string) error
}

// pathResolver defines workspace path resolution operations.
type pathResolver interface {
	Resolve(path string) (abs string, rel string, err error)
}

// -- List Directory --

type ListDirectoryRequest struct {
	Path string `json:"path,omitempty"`
}

// Entry is one directory listing row.
type Entry struct {
	RelativePath string
	IsDir        bool
	Size         int64
}

type ListDirectoryResponse struct {
	Entries []Entry
	Path    string
}

// ListDirectoryTool lists the immediate children of a workspace directory,
// directories first, each group sorted by name. Recursive lookup is served by
// the file index instead.
type ListDirectoryTool struct {
	fs           fileSystem
	pathResolver pathResolver
	config       *config.Config
}

// NewListDirectoryTool creates a new ListDirectoryTool with injected dependencies.
func NewListDirectoryTool(fs fileSystem, pathResolver pathResolver, cfg *config.Config) *ListDirectoryTool {
	if fs == nil {
		panic("fs is required")
	}
	if pathResolver == nil {
		panic("pathResolver is required")
	}
	if cfg == nil {
		panic("config is required")
	}
	return &ListDirectoryTool{
		fs:           fs,
		pathResolver: pathResolver,
		config:       cfg,
	}
}

// Run lists a directory within the workspace.
//
// Note: ctx is accepted for API consistency but not used - file I/O is synchronous.
func (t *ListDirectoryTool) Run(ctx context.Context, req *ListDirectoryRequest) (*ListDirectoryResponse, error) {
	reqPath := req.Path
	if reqPath == "" {
		reqPath = "."
	}

	abs, rel, err := t.pathResolver.Resolve(reqPath)
	if err != nil {
		return nil, err
	}

	info, err := t.fs.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileMissing, abs)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", abs, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotADirectory, abs)
	}

	infos, err := t.fs.ListDir(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", abs, err)
	}

	entries := make([]Entry, 0, len(infos))
	for _, fi := range infos {
		entry := Entry{
			RelativePath: path.Join(rel, fi.Name()),
			IsDir:        fi.IsDir(),
		}
		if !fi.IsDir() {
			entry.Size = fi.Size()
		}
		entries = append(entries, entry)
	}

	// Directories first, then files, both alphabetically
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].IsDir != entries[j].IsDir {
			return entries[i].IsDir
		}
		return entries[i].RelativePath < entries[j].RelativePath
	})

	return &ListDirectoryResponse{Entries: entries, Path: rel}, nil
}
