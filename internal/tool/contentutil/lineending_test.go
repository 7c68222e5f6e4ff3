package contentutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectLineEnding(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected LineEnding
	}{
		{name: "LF content", input: "a\nb\nc", expected: LF},
		{name: "CRLF content", input: "a\r\nb\r\nc", expected: CRLF},
		{name: "bare CR content", input: "a\rb\rc", expected: CR},
		{name: "CRLF wins over later CR", input: "a\r\nb\rc", expected: CRLF},
		{name: "empty defaults to LF", input: "", expected: LF},
		{name: "no terminator defaults to LF", input: "single line", expected: LF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectLineEnding(tt.input))
		})
	}
}

func TestNormalizeRestoreRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "CRLF", input: "a\r\nb\r\nc\r\n"},
		{name: "CR", input: "a\rb\rc"},
		{name: "LF", input: "a\nb\nc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			le := DetectLineEnding(tt.input)
			normalized := NormalizeLineEndings(tt.input)
			assert.NotContains(t, normalized, "\r")
			assert.Equal(t, tt.input, RestoreLineEndings(normalized, le))
		})
	}
}

func TestLineEndingLabel(t *testing.T) {
	assert.Equal(t, "CRLF", CRLF.Label())
	assert.Equal(t, "CR", CR.Label())
	assert.Equal(t, "LF", LF.Label())
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "single line", input: "line1", expected: []string{"line1"}},
		{name: "LF lines", input: "a\nb\nc", expected: []string{"a", "b", "c"}},
		{name: "CRLF lines", input: "a\r\nb\r\nc", expected: []string{"a", "b", "c"}},
		{name: "trailing LF drops empty tail", input: "a\nb\n", expected: []string{"a", "b"}},
		{name: "mixed endings", input: "a\r\nb\nc", expected: []string{"a", "b", "c"}},
		{name: "empty", input: "", expected: nil},
		{name: "blank interior line", input: "a\n\nb", expected: []string{"a", "", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitLines(tt.input))
		})
	}
}
