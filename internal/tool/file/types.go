package file

import (
	"github.com/Cyclone1070/workbench/internal/config"
)

// -- Read File --

type ReadFileRequest struct {
	Path      string `json:"path"`
	LineStart int    `json:"line_start,omitempty"`
	LineEnd   int    `json:"line_end,omitempty"`
}

func (r *ReadFileRequest) Validate(cfg *config.Config) error {
	if r.Path == "" {
		return ErrPathRequired
	}
	return nil
}

type ReadFileResponse struct {
	Content      string
	AbsolutePath string
	RelativePath string
	TotalLines   int
	Size         int64
}

// -- Write File --

type WriteFileRequest struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

func (r *WriteFileRequest) Validate(cfg *config.Config) error {
	if r.Path == "" {
		return ErrPathRequired
	}
	if int64(len(r.Content)) > cfg.Tools.MaxFileSize {
		return ErrFileTooLarge
	}
	return nil
}

type WriteFileResponse struct {
	AbsolutePath string
	RelativePath string
	BytesWritten int
}

// -- Line Edit --

type LineEditRequest struct {
	Path       string `json:"path"`
	LineStart  int    `json:"line_start"`
	LineEnd    *int   `json:"line_end,omitempty"`
	NewContent string `json:"new_content"`
}

func (r *LineEditRequest) Validate(cfg *config.Config) error {
	if r.Path == "" {
		return ErrPathRequired
	}
	if int64(len(r.NewContent)) > cfg.Tools.MaxFileSize {
		return ErrFileTooLarge
	}
	return nil
}

// EffectiveEnd returns the inclusive end line, defaulting to the start line
// when line_end is omitted.
func (r *LineEditRequest) EffectiveEnd() int {
	if r.LineEnd == nil {
		return r.LineStart
	}
	return *r.LineEnd
}

type LineEditResponse struct {
	AbsolutePath  string
	RelativePath  string
	Diff          string // fenced, for display
	Summary       string
	LinesReplaced int
	LinesAdded    int
	TotalLines    int
	LineEnding    string
}

// -- Pattern Edit --

// EditOperation is a single old-text to new-text substitution. A sequence of
// operations is applied in order against one file.
type EditOperation struct {
	OldText string `json:"old_text"`
	NewText string `json:"new_text"`
}

type PatternEditRequest struct {
	Path   string          `json:"path"`
	Edits  []EditOperation `json:"edits"`
	DryRun bool            `json:"dry_run,omitempty"`
}

func (r *PatternEditRequest) Validate(cfg *config.Config) error {
	if r.Path == "" {
		return ErrPathRequired
	}
	if len(r.Edits) == 0 {
		return ErrEditsRequired
	}
	return nil
}

type PatternEditResponse struct {
	AbsolutePath string
	RelativePath string
	Diff         string // fenced, for display
	EditsApplied int
	DryRun       bool
}
