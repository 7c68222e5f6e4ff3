package file

import (
	"context"
	"fmt"
	"os"

	"github.com/Cyclone1070/workbench/internal/config"
	"github.com/Cyclone1070/workbench/internal/tool/contentutil"
)

// WriteFileTool creates new files in the workspace. It never overwrites: an
// existing target must be changed through edit_lines or apply_edits, and a
// missing parent directory must be created explicitly with create_directory.
type WriteFileTool struct {
	fileOps      fileOps
	pathResolver pathResolver
	config       *config.Config
}

// NewWriteFileTool creates a new WriteFileTool with injected dependencies.
func NewWriteFileTool(fileOps fileOps, pathResolver pathResolver, cfg *config.Config) *WriteFileTool {
	if fileOps == nil {
		panic("fileOps is required")
	}
	if pathResolver == nil {
		panic("pathResolver is required")
	}
	if cfg == nil {
		panic("config is required")
	}
	return &WriteFileTool{
		fileOps:      fileOps,
		pathResolver: pathResolver,
		config:       cfg,
	}
}

// Run creates a new file with the given content via an atomic write.
//
// Note: ctx is accepted for API consistency but not used - file I/O is synchronous.
func (t *WriteFileTool) Run(ctx context.Context, req *WriteFileRequest) (*WriteFileResponse, error) {
	if err := req.Validate(t.config); err != nil {
		return nil, err
	}

	abs, rel, err := t.pathResolver.Resolve(req.Path)
	if err != nil {
		return nil, err
	}

	_, err = t.fileOps.Stat(abs)
	if err == nil {
		return nil, fmt.Errorf("%w: %s", ErrFileExists, abs)
	}
	if !os.IsNotExist(err) {
		return nil, &StatError{Path: abs, Cause: err}
	}

	contentBytes := []byte(req.Content)
	if contentutil.IsBinaryContent(contentBytes) {
		return nil, fmt.Errorf("%w: %s", ErrBinaryFile, abs)
	}

	if err := t.fileOps.WriteFileAtomic(abs, contentBytes, 0o644); err != nil {
		return nil, &WriteError{Path: abs, Cause: err}
	}

	return &WriteFileResponse{
		AbsolutePath: abs,
		RelativePath: rel,
		BytesWritten: len(contentBytes),
	}, nil
}
