package contentutil

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// UnifiedDiff produces a unified diff between two content snapshots.
// Both sides are LF-normalized first so the diff never shows spurious
// CRLF-only changes. The label names the file in the hunk headers.
func UnifiedDiff(original, modified, label string) string {
	ud := difflib.UnifiedDiff{
		A:        difflib.SplitLines(NormalizeLineEndings(original)),
		B:        difflib.SplitLines(NormalizeLineEndings(modified)),
		FromFile: label + " (original)",
		ToFile:   label + " (modified)",
		Context:  3,
	}
	diff, _ := difflib.GetUnifiedDiffString(ud)
	return diff
}

// DiffStats counts added and removed lines in a unified diff.
func DiffStats(diff string) (added, removed int) {
	for _, line := range strings.Split(diff, "\n") {
		if strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++") {
			added++
		} else if strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "---") {
			removed++
		}
	}
	return added, removed
}

// FenceDiff wraps a diff in a fenced code block. The fence uses one more
// backtick than the longest backtick run already present in the body, so the
// block survives diffs that themselves contain fenced blocks.
func FenceDiff(diff string) string {
	longest := 0
	run := 0
	for _, r := range diff {
		if r == '`' {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}

	fenceLen := max(3, longest+1)
	fence := strings.Repeat("`", fenceLen)

	body := strings.TrimSuffix(diff, "\n")
	return fence + "diff\n" + body + "\n" + fence
}
