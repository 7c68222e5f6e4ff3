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

// PatternEditTool applies a sequence of old-text to new-text substitutions to
// one file. Each edit tries an exact match first and falls back to
// whitespace-tolerant line-block matching with indentation inference. One
// failed edit aborts the whole batch before anything touches disk, so the
// operation is all-or-nothing even though it is not a single write.
type PatternEditTool struct {
	fileOps      fileOps
	pathResolver pathResolver
	config       *config.Config
}

// NewPatternEditTool creates a new PatternEditTool with injected dependencies.
func NewPatternEditTool(fileOps fileOps, pathResolver pathResolver, cfg *config.Config) *PatternEditTool {
	if fileOps == nil {
		panic("fileOps is required")
	}
	if pathResolver == nil {
		panic("pathResolver is required")
	}
	if cfg == nil {
		panic("config is required")
	}
	return &PatternEditTool{
		fileOps:      fileOps,
		pathResolver: pathResolver,
		config:       cfg,
	}
}

// Run applies the requested edits in order against an in-memory buffer and
// persists the result atomically unless dry_run is set.
//
// Note: ctx is accepted for API consistency but not used - file I/O is synchronous.
func (t *PatternEditTool) Run(ctx context.Context, req *PatternEditRequest) (*PatternEditResponse, error) {
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
	buf := contentutil.NormalizeLineEndings(original)

	for _, edit := range req.Edits {
		buf, err = applyEdit(buf, edit)
		if err != nil {
			return nil, err
		}
	}

	newContent := contentutil.RestoreLineEndings(buf, lineEnding)

	if int64(len(newContent)) > t.config.Tools.MaxFileSize {
		return nil, fmt.Errorf("%w: %s after edit (size %d, limit %d)",
			ErrFileTooLarge, abs, len(newContent), t.config.Tools.MaxFileSize)
	}

	diff := contentutil.UnifiedDiff(original, newContent, filepath.Base(abs))

	if !req.DryRun {
		if err := t.fileOps.WriteFileAtomic(abs, []byte(newContent), info.Mode()); err != nil {
			return nil, &WriteError{Path: abs, Cause: err}
		}
	}

	return &PatternEditResponse{
		AbsolutePath: abs,
		RelativePath: rel,
		Diff:         contentutil.FenceDiff(diff),
		EditsApplied: len(req.Edits),
		DryRun:       req.DryRun,
	}, nil
}

// applyEdit applies one substitution to an LF-normalized buffer.
// Exact match wins; otherwise the earliest whitespace-tolerant block match is
// used. First occurrence wins in both modes, even when the old text appears
// more than once.
func applyEdit(buf string, edit EditOperation) (string, error) {
	oldText := contentutil.NormalizeLineEndings(edit.OldText)
	newText := contentutil.NormalizeLineEndings(edit.NewText)

	if oldText == "" {
		return "", ErrEmptyOldText
	}

	// An exact match that starts inside a line's leading whitespace would keep
	// only oldText's claimed indent, so it is left for the block matcher,
	// which takes the indent from the matched block instead.
	if idx := strings.Index(buf, oldText); idx >= 0 && !insideIndent(buf, idx) {
		return buf[:idx] + newText + buf[idx+len(oldText):], nil
	}

	replaced, ok := replaceBlock(buf, oldText, newText)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrNoMatchFound, edit.OldText)
	}
	return replaced, nil
}

// insideIndent reports whether position idx is preceded on its line by one or
// more whitespace characters and nothing else.
func insideIndent(buf string, idx int) bool {
	lineStart := strings.LastIndexByte(buf[:idx], '\n') + 1
	if lineStart == idx {
		return false
	}
	return strings.TrimLeft(buf[lineStart:idx], " \t") == ""
}

// replaceBlock slides a window the length of oldText's lines over the buffer
// and matches when every line's trimmed content agrees. The replacement keeps
// the matched block's leading indentation: the first replacement line takes
// it verbatim, and subsequent lines get the block-versus-oldText indent
// offset applied on top of their own indentation, clamped at zero.
func replaceBlock(buf, oldText, newText string) (string, bool) {
	bufLines := strings.Split(buf, "\n")
	oldLines := strings.Split(oldText, "\n")
	newLines := strings.Split(newText, "\n")

	if len(oldLines) > len(bufLines) {
		return "", false
	}

	for i := 0; i+len(oldLines) <= len(bufLines); i++ {
		if !windowMatches(bufLines[i:i+len(oldLines)], oldLines) {
			continue
		}

		baseIndent := leadingWhitespace(bufLines[i])
		offset := len(baseIndent) - len(leadingWhitespace(oldLines[0]))

		adjusted := make([]string, len(newLines))
		for j, line := range newLines {
			adjusted[j] = reindent(line, baseIndent, offset, j == 0)
		}

		result := make([]string, 0, len(bufLines)-len(oldLines)+len(adjusted))
		result = append(result, bufLines[:i]...)
		result = append(result, adjusted...)
		result = append(result, bufLines[i+len(oldLines):]...)
		return strings.Join(result, "\n"), true
	}

	return "", false
}

func windowMatches(window, oldLines []string) bool {
	for k := range oldLines {
		if strings.TrimSpace(window[k]) != strings.TrimSpace(oldLines[k]) {
			return false
		}
	}
	return true
}

// reindent rebuilds one replacement line's indentation. The first line
// inherits the matched block's indent verbatim; later lines shift their own
// indent by the block-versus-oldText offset, never going negative.
func reindent(line, baseIndent string, offset int, first bool) string {
	body := strings.TrimLeft(line, " \t")
	if first {
		return baseIndent + body
	}
	if offset == 0 {
		return line
	}

	target := len(leadingWhitespace(line)) + offset
	if target < 0 {
		target = 0
	}

	unit := " "
	if strings.Contains(baseIndent, "\t") {
		unit = "\t"
	}
	return strings.Repeat(unit, target) + body
}

func leadingWhitespace(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}
