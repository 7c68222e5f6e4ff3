package todo

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Cyclone1070/workbench/internal/config"
	"github.com/Cyclone1070/workbench/internal/tool/fsutil"
	"github.com/Cyclone1070/workbench/internal/tool/gitutil"
	"github.com/Cyclone1070/workbench/internal/tool/index"
)

func newScanTool(t *testing.T, cfg *config.Config, files map[string]string) *ScanTool {
	t.Helper()
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	root := t.TempDir()
	for rel, content := range files {
		abs := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(abs), 0o755))
		require.NoError(t, os.WriteFile(abs, []byte(content), 0o644))
	}

	store := index.NewStore()
	indexer := index.NewIndexer(root, &gitutil.NoOpMatcher{}, cfg, zap.NewNop())
	catalog, err := indexer.Build(context.Background())
	require.NoError(t, err)
	store.Swap(catalog)

	return NewScanTool(root, fsutil.NewOSFileSystem(), store, cfg, zap.NewNop())
}

func TestScan_FindsAllMarkers(t *testing.T) {
	tool := newScanTool(t, nil, map[string]string{
		"main.go": "package main\n// TODO: wire flags\nfunc main() {}\n// FIXME handle error\n",
		"util.py": "# HACK workaround for locale\nx = 1  # XXX revisit\n",
	})

	resp, err := tool.Run(&ScanRequest{})

	require.NoError(t, err)
	require.Equal(t, 4, resp.Total)
	assert.False(t, resp.Truncated)

	// Files scan in sorted order, lines in file order.
	assert.Equal(t, Match{File: "main.go", Line: 2, Marker: "TODO", Text: "wire flags"}, resp.Matches[0])
	assert.Equal(t, Match{File: "main.go", Line: 4, Marker: "FIXME", Text: "handle error"}, resp.Matches[1])
	assert.Equal(t, "HACK", resp.Matches[2].Marker)
	assert.Equal(t, "XXX", resp.Matches[3].Marker)
}

func TestScan_MarkerFilter(t *testing.T) {
	tool := newScanTool(t, nil, map[string]string{
		"a.go": "// TODO first\n// FIXME second\n",
	})

	resp, err := tool.Run(&ScanRequest{Marker: "fixme"})

	require.NoError(t, err)
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "FIXME", resp.Matches[0].Marker)
	assert.Equal(t, "second", resp.Matches[0].Text)
}

func TestScan_UnknownMarkerRejected(t *testing.T) {
	tool := newScanTool(t, nil, map[string]string{"a.go": "// TODO x\n"})

	_, err := tool.Run(&ScanRequest{Marker: "NOTE"})

	assert.ErrorIs(t, err, ErrUnknownMarker)
}

func TestScan_PathPrefixFilter(t *testing.T) {
	tool := newScanTool(t, nil, map[string]string{
		"src/a.go":  "// TODO in src\n",
		"docs/b.md": "TODO in docs\n",
	})

	resp, err := tool.Run(&ScanRequest{PathPrefix: "src"})

	require.NoError(t, err)
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "src/a.go", resp.Matches[0].File)
}

func TestScan_WordBoundary(t *testing.T) {
	tool := newScanTool(t, nil, map[string]string{
		"a.go": "// TODOS is not a marker\n// mastodon neither\n// TODO real one\n",
	})

	resp, err := tool.Run(&ScanRequest{})

	require.NoError(t, err)
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, 3, resp.Matches[0].Line)
}

func TestScan_SkipsNonTextPriorities(t *testing.T) {
	tool := newScanTool(t, nil, map[string]string{
		"a.go":      "// TODO indexed\n",
		"image.png": "TODO inside a binary-ish asset\n",
	})

	resp, err := tool.Run(&ScanRequest{})

	require.NoError(t, err)
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "a.go", resp.Matches[0].File)
}

func TestScan_TruncatesAtConfiguredCap(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Tools.MaxTodoResults = 2
	tool := newScanTool(t, cfg, map[string]string{
		"a.go": "// TODO one\n// TODO two\n// TODO three\n",
	})

	resp, err := tool.Run(&ScanRequest{})

	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
	assert.True(t, resp.Truncated)
}

func TestScan_IndexNotBuilt(t *testing.T) {
	cfg := config.DefaultConfig()
	tool := NewScanTool(t.TempDir(), fsutil.NewOSFileSystem(), index.NewStore(), cfg, zap.NewNop())

	_, err := tool.Run(&ScanRequest{})

	assert.ErrorIs(t, err, index.ErrIndexNotBuilt)
}
