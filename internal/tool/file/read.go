package file

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/Cyclone1070/workbench/internal/config"
	"github.com/Cyclone1070/workbench/internal/tool/contentutil"
)

// ReadFileTool handles file reading operations.
type ReadFileTool struct {
	fileOps      fileOps
	pathResolver pathResolver
	config       *config.Config
}

// NewReadFileTool creates a new ReadFileTool with injected dependencies.
func NewReadFileTool(fileOps fileOps, pathResolver pathResolver, cfg *config.Config) *ReadFileTool {
	if fileOps == nil {
		panic("fileOps is required")
	}
	if pathResolver == nil {
		panic("pathResolver is required")
	}
	if cfg == nil {
		panic("config is required")
	}
	return &ReadFileTool{
		fileOps:      fileOps,
		pathResolver: pathResolver,
		config:       cfg,
	}
}

// Run reads a file within the workspace, optionally restricted to a 1-based
// inclusive line range. Binary files and files over the configured size limit
// are rejected.
//
// Note: ctx is accepted for API consistency but not used - file I/O is synchronous.
func (t *ReadFileTool) Run(ctx context.Context, req *ReadFileRequest) (*ReadFileResponse, error) {
	if err := req.Validate(t.config); err != nil {
		return nil, err
	}

	abs, rel, err := t.pathResolver.Resolve(req.Path)
	if err != nil {
		return nil, err
	}

	info, err := t.fileOps.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileMissing, abs)
		}
		return nil, &StatError{Path: abs, Cause: err}
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrIsDirectory, abs)
	}
	if info.Size() > t.config.Tools.MaxFileSize {
		return nil, fmt.Errorf("%w: %s (size %d, limit %d)",
			ErrFileTooLarge, abs, info.Size(), t.config.Tools.MaxFileSize)
	}

	data, err := t.fileOps.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", abs, err)
	}
	if contentutil.IsBinaryContent(data) {
		return nil, fmt.Errorf("%w: %s", ErrBinaryFile, abs)
	}

	content := string(data)
	lines := contentutil.SplitLines(content)
	totalLines := len(lines)

	if req.LineStart > 0 {
		end := req.LineEnd
		if end == 0 || end > totalLines {
			end = totalLines
		}
		if err := validateRange(req.LineStart, end, totalLines); err != nil {
			return nil, err
		}
		content = strings.Join(lines[req.LineStart-1:end], "\n")
	}

	return &ReadFileResponse{
		Content:      content,
		AbsolutePath: abs,
		RelativePath: rel,
		TotalLines:   totalLines,
		Size:         info.Size(),
	}, nil
}
