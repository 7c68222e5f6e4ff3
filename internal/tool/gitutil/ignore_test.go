package gitutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cyclone1070/workbench/internal/tool/fsutil"
)

func writeGitignore(t *testing.T, root, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".gitignore"), []byte(content), 0o644))
}

func TestIgnoreMatcher_NoGitignore_NeverIgnores(t *testing.T) {
	root := t.TempDir()

	m, err := NewIgnoreMatcher(root, fsutil.NewOSFileSystem())

	require.NoError(t, err)
	assert.False(t, m.ShouldIgnore("anything.txt", false))
	assert.False(t, m.ShouldIgnore("some/dir", true))
}

func TestIgnoreMatcher_MatchesPatterns(t *testing.T) {
	root := t.TempDir()
	writeGitignore(t, root, "*.log\ndist/\n# comment\n\nsecrets.txt\n")

	m, err := NewIgnoreMatcher(root, fsutil.NewOSFileSystem())
	require.NoError(t, err)

	assert.True(t, m.ShouldIgnore("debug.log", false))
	assert.True(t, m.ShouldIgnore("sub/dir/trace.log", false))
	assert.True(t, m.ShouldIgnore("dist", true))
	assert.True(t, m.ShouldIgnore("secrets.txt", false))
	assert.False(t, m.ShouldIgnore("main.go", false))
	assert.False(t, m.ShouldIgnore("src", true))
}

func TestIgnoreMatcher_NegatedPatterns(t *testing.T) {
	root := t.TempDir()
	writeGitignore(t, root, "*.log\n!keep.log\n")

	m, err := NewIgnoreMatcher(root, fsutil.NewOSFileSystem())
	require.NoError(t, err)

	assert.True(t, m.ShouldIgnore("debug.log", false))
	assert.False(t, m.ShouldIgnore("keep.log", false))
}

func TestIgnoreMatcher_CRLFGitignore(t *testing.T) {
	root := t.TempDir()
	writeGitignore(t, root, "*.tmp\r\nbuildout/\r\n")

	m, err := NewIgnoreMatcher(root, fsutil.NewOSFileSystem())
	require.NoError(t, err)

	assert.True(t, m.ShouldIgnore("scratch.tmp", false))
	assert.True(t, m.ShouldIgnore("buildout", true))
}

func TestNoOpMatcher_NeverIgnores(t *testing.T) {
	m := &NoOpMatcher{}
	assert.False(t, m.ShouldIgnore("node_modules/x.js", false))
	assert.False(t, m.ShouldIgnore("anything", true))
}

func TestSplitPath(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c.txt"}, splitPath("a/b/c.txt"))
	assert.Equal(t, []string{"a"}, splitPath("./a"))
	assert.Empty(t, splitPath(""))
}
