package directory

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Cyclone1070/workbench/internal/tool/pathutil"
)

// -- Create Directory --

type CreateDirectoryRequest struct {
	Path string `json:"path"`
}

type CreateDirectoryResponse struct {
	AbsolutePath string
	RelativePath string
}

// CreateDirectoryTool creates a directory (and missing parents) inside the
// workspace. Directory creation is an explicit operation: file writes never
// create parents implicitly.
type CreateDirectoryTool struct {
	fs           fileSystem
	pathResolver pathResolver
}

// NewCreateDirectoryTool creates a new CreateDirectoryTool with injected dependencies.
func NewCreateDirectoryTool(fs fileSystem, pathResolver pathResolver) *CreateDirectoryTool {
	if fs == nil {
		panic("fs is required")
	}
	if pathResolver == nil {
		panic("pathResolver is required")
	}
	return &CreateDirectoryTool{
		fs:           fs,
		pathResolver: pathResolver,
	}
}

// Run creates the requested directory tree.
//
// Note: ctx is accepted for API consistency but not used - file I/O is synchronous.
func (t *CreateDirectoryTool) Run(ctx context.Context, req *CreateDirectoryRequest) (*CreateDirectoryResponse, error) {
	if req.Path == "" {
		return nil, ErrPathRequired
	}

	abs, rel, err := t.resolveForCreate(req.Path)
	if err != nil {
		return nil, err
	}

	if info, err := t.fs.Stat(abs); err == nil {
		if info.IsDir() {
			return nil, fmt.Errorf("%w: %s", ErrDirExists, abs)
		}
		return nil, fmt.Errorf("%w: %s", ErrNotADirectory, abs)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to stat %s: %w", abs, err)
	}

	if err := t.fs.MkdirAll(abs); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", abs, err)
	}

	return &CreateDirectoryResponse{AbsolutePath: abs, RelativePath: rel}, nil
}

// resolveForCreate validates a possibly deeply-nested new directory path by
// resolving its nearest existing ancestor through the workspace guard and
// re-attaching the missing tail. Traversal segments are rejected by the guard
// before any tail is accumulated.
func (t *CreateDirectoryTool) resolveForCreate(reqPath string) (abs string, rel string, err error) {
	p := filepath.Clean(reqPath)
	tail := ""

	for {
		abs, rel, err = t.pathResolver.Resolve(p)
		if err == nil {
			break
		}
		if !errors.Is(err, pathutil.ErrParentMissing) {
			return "", "", err
		}
		parent := filepath.Dir(p)
		if parent == p {
			return "", "", err
		}
		tail = filepath.Join(filepath.Base(p), tail)
		p = parent
	}

	if tail != "" {
		abs = filepath.Join(abs, tail)
		rel = filepath.ToSlash(filepath.Join(rel, tail))
	}
	return abs, rel, nil
}
