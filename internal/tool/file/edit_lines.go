package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Cyclone1070/workbench/internal/config"
	"github.com/Cyclone1070/workbench/internal/tool/contentutil"
)

// LineEditTool replaces a 1-based inclusive line range of a file with new
// content. The range is validated against the file's current line count, the
// original line-ending style is preserved, and the write is verified after
// the fact: an unexpectedly empty result is treated as corruption and the
// pre-edit content is restored.
type LineEditTool struct {
	fileOps      fileOps
	pathResolver pathResolver
	config       *config.Config
}

// NewLineEditTool creates a new LineEditTool with injected dependencies.
func NewLineEditTool(fileOps fileOps, pathResolver pathResolver, cfg *config.Config) *LineEditTool {
	if fileOps == nil {
		panic("fileOps is required")
	}
	if pathResolver == nil {
		panic("pathResolver is required")
	}
	if cfg == nil {
		panic("config is required")
	}
	return &LineEditTool{
		fileOps:      fileOps,
		pathResolver: pathResolver,
		config:       cfg,
	}
}

// Run performs a line-range edit.
//
// Note: ctx is accepted for API consistency but not used - file I/O is synchronous.
func (t *LineEditTool) Run(ctx context.Context, req *LineEditRequest) (*LineEditResponse, error) {
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

	data, err := t.fileOps.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", abs, err)
	}
	if contentutil.IsBinaryContent(data) {
		return nil, fmt.Errorf("%w: %s", ErrBinaryFile, abs)
	}

	original := string(data)
	lineEnding := contentutil.DetectLineEnding(original)
	lines := contentutil.SplitLines(original)
	totalLines := len(lines)

	lineStart := req.LineStart
	lineEnd := req.EffectiveEnd()
	if err := validateRange(lineStart, lineEnd, totalLines); err != nil {
		return nil, err
	}

	// Replacement lines come in LF-normalized; the original style is restored
	// on the full rejoined content below.
	newLines := strings.Split(contentutil.NormalizeLineEndings(req.NewContent), "\n")

	spliced := make([]string, 0, totalLines-(lineEnd-lineStart+1)+len(newLines))
	spliced = append(spliced, lines[:lineStart-1]...)
	spliced = append(spliced, newLines...)
	spliced = append(spliced, lines[lineEnd:]...)

	rejoined := strings.Join(spliced, "\n")
	if hasTrailingNewline(original) {
		rejoined += "\n"
	}
	newContent := contentutil.RestoreLineEndings(rejoined, lineEnding)

	label := filepath.Base(abs)
	diff := contentutil.UnifiedDiff(original, newContent, label)

	if err := t.fileOps.WriteFileAtomic(abs, []byte(newContent), info.Mode()); err != nil {
		return nil, &WriteError{Path: abs, Cause: err}
	}

	// Shallow verification: guard against an aborted write leaving a zero-byte
	// file. A partial-but-nonempty corrupted write is not caught.
	if err := t.verifyWrite(abs, original, newContent, info.Mode()); err != nil {
		return nil, err
	}

	linesReplaced := lineEnd - lineStart + 1
	summary := fmt.Sprintf("Replaced %d line(s) with %d line(s) in %s. File now has %d lines (%s line endings).",
		linesReplaced, len(newLines), rel, len(spliced), lineEnding.Label())

	return &LineEditResponse{
		AbsolutePath:  abs,
		RelativePath:  rel,
		Diff:          contentutil.FenceDiff(diff),
		Summary:       summary,
		LinesReplaced: linesReplaced,
		LinesAdded:    len(newLines),
		TotalLines:    len(spliced),
		LineEnding:    lineEnding.Label(),
	}, nil
}

// verifyWrite re-reads the file and restores the pre-edit snapshot if the
// write left the file empty while non-empty content was intended. A failed
// restore is the one locally unrecoverable condition and is surfaced with
// both failure messages.
func (t *LineEditTool) verifyWrite(abs, original, intended string, perm os.FileMode) error {
	reread, err := t.fileOps.ReadFile(abs)
	if err == nil && (len(reread) > 0 || len(intended) == 0) {
		return nil
	}

	verifyMsg := "file is empty after write"
	if err != nil {
		verifyMsg = fmt.Sprintf("re-read failed: %v", err)
	}

	if restoreErr := t.fileOps.WriteFileAtomic(abs, []byte(original), perm); restoreErr != nil {
		return fmt.Errorf("%w: %s: verification: %s; restore: %v",
			ErrCriticalRecoveryFailure, abs, verifyMsg, restoreErr)
	}
	return fmt.Errorf("%w: %s (%s)", ErrCorruptionDetected, abs, verifyMsg)
}

// validateRange checks a 1-based inclusive line range against the file's
// current line count, naming the violated bound in the error.
func validateRange(lineStart, lineEnd, totalLines int) error {
	if lineStart < 1 || lineStart > totalLines {
		return fmt.Errorf("%w: line_start %d is out of range, file has %d line(s)",
			ErrInvalidRange, lineStart, totalLines)
	}
	if lineEnd < lineStart {
		return fmt.Errorf("%w: line_end %d precedes line_start %d",
			ErrInvalidRange, lineEnd, lineStart)
	}
	if lineEnd > totalLines {
		return fmt.Errorf("%w: line_end %d is out of range, file has %d line(s)",
			ErrInvalidRange, lineEnd, totalLines)
	}
	return nil
}

func hasTrailingNewline(content string) bool {
	return strings.HasSuffix(content, "\n") || strings.HasSuffix(content, "\r")
}
