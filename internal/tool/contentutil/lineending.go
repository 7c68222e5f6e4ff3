package contentutil

import "strings"

// LineEnding identifies the line terminator convention of a text blob.
// It is derived from content on every read, never stored.
type LineEnding string

const (
	CRLF LineEnding = "\r\n"
	CR   LineEnding = "\r"
	LF   LineEnding = "\n"
)

// Label returns the human-readable name of the line ending.
func (le LineEnding) Label() string {
	switch le {
	case CRLF:
		return "CRLF"
	case CR:
		return "CR"
	default:
		return "LF"
	}
}

// DetectLineEnding inspects content and reports its line terminator.
// The first \r\n wins, else a bare \r, else LF is the default.
func DetectLineEnding(content string) LineEnding {
	if strings.Contains(content, "\r\n") {
		return CRLF
	}
	if strings.Contains(content, "\r") {
		return CR
	}
	return LF
}

// NormalizeLineEndings converts any line terminator convention to bare LF,
// the internal representation used for matching and diffing.
func NormalizeLineEndings(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	return strings.ReplaceAll(content, "\r", "\n")
}

// RestoreLineEndings re-joins LF-normalized content using the originally
// detected style so an edit never changes a file's line-ending convention.
func RestoreLineEndings(content string, le LineEnding) string {
	if le == LF {
		return content
	}
	return strings.ReplaceAll(content, "\n", string(le))
}
