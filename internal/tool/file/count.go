package file

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/Cyclone1070/workbench/internal/config"
	"github.com/Cyclone1070/workbench/internal/tool/contentutil"
)

// -- Count --

type CountRequest struct {
	Path string `json:"path"`
}

func (r *CountRequest) Validate(cfg *config.Config) error {
	if r.Path == "" {
		return ErrPathRequired
	}
	return nil
}

type CountResponse struct {
	RelativePath string
	Lines        int
	Words        int
	Bytes        int64
}

// CountTool reports line, word, and byte counts for one workspace file.
type CountTool struct {
	fileOps      fileOps
	pathResolver pathResolver
	config       *config.Config
}

// NewCountTool creates a new CountTool with injected dependencies.
func NewCountTool(fileOps fileOps, pathResolver pathResolver, cfg *config.Config) *CountTool {
	if fileOps == nil {
		panic("fileOps is required")
	}
	if pathResolver == nil {
		panic("pathResolver is required")
	}
	if cfg == nil {
		panic("config is required")
	}
	return &CountTool{
		fileOps:      fileOps,
		pathResolver: pathResolver,
		config:       cfg,
	}
}

// Run counts lines, whitespace-separated words, and bytes.
//
// Note: ctx is accepted for API consistency but not used - file I/O is synchronous.
func (t *CountTool) Run(ctx context.Context, req *CountRequest) (*CountResponse, error) {
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
	return &CountResponse{
		RelativePath: rel,
		Lines:        len(contentutil.SplitLines(content)),
		Words:        len(strings.Fields(content)),
		Bytes:        info.Size(),
	}, nil
}
