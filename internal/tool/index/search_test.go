package index

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Cyclone1070/workbench/internal/config"
)

func catalogOf(rels ...string) *Catalog {
	entries := make(map[string]Entry, len(rels))
	for _, rel := range rels {
		name := rel
		if i := lastSlash(rel); i >= 0 {
			name = rel[i+1:]
		}
		entries[rel] = Entry{
			RelativePath: rel,
			Name:         name,
			Priority:     priorityFor(name),
		}
	}
	return &Catalog{Entries: entries}
}

func lastSlash(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '/' {
			return i
		}
	}
	return -1
}

func relPaths(matches []Match) []string {
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Entry.RelativePath
	}
	return out
}

func TestSearch_ExactRelativePathWins(t *testing.T) {
	catalog := catalogOf("src/app.js", "app.js", "lib/app.js.map")

	matches := Search(catalog, "app.js", 10)

	require.NotEmpty(t, matches)
	assert.Equal(t, "app.js", matches[0].Entry.RelativePath)
	assert.Equal(t, scoreExactPath, matches[0].Score)
}

func TestSearch_ShorterPathBeatsDeeperPath(t *testing.T) {
	catalog := catalogOf("src/app.js", "src/deep/nested/app.js")

	matches := Search(catalog, "app.js", 10)

	require.Len(t, matches, 2)
	assert.Equal(t, []string{"src/app.js", "src/deep/nested/app.js"}, relPaths(matches))
}

func TestSearch_NameContainsRanksBelowPathContains(t *testing.T) {
	catalog := catalogOf("docs/handler.md", "src/handlers.go")

	// "handler" is a substring of both paths, so both get the path tier.
	matches := Search(catalog, "handler", 10)
	require.Len(t, matches, 2)
	for _, m := range matches {
		assert.GreaterOrEqual(t, m.Score, scorePathContains)
	}
}

func TestSearch_CaseInsensitive(t *testing.T) {
	catalog := catalogOf("src/ReadMe.MD")

	matches := Search(catalog, "readme.md", 10)

	require.Len(t, matches, 1)
	assert.Equal(t, "src/ReadMe.MD", matches[0].Entry.RelativePath)
}

func TestSearch_PriorityBreaksScoreTies(t *testing.T) {
	catalog := catalogOf("aa/config.png", "aa/config.gox")
	// Force identical scores and path lengths, differing priorities.
	entries := catalog.Entries
	pngEntry := entries["aa/config.png"]
	pngEntry.Priority = PriorityOther
	entries["aa/config.png"] = pngEntry
	goEntry := entries["aa/config.gox"]
	goEntry.Priority = PrioritySource
	entries["aa/config.gox"] = goEntry

	matches := Search(catalog, "config", 10)

	require.Len(t, matches, 2)
	assert.Equal(t, "aa/config.gox", matches[0].Entry.RelativePath)
}

func TestSearch_LimitTruncates(t *testing.T) {
	catalog := catalogOf("a/x.go", "b/x.go", "c/x.go", "d/x.go")

	matches := Search(catalog, "x.go", 2)

	assert.Len(t, matches, 2)
}

func TestSearch_NoMatches(t *testing.T) {
	catalog := catalogOf("src/app.js")

	assert.Empty(t, Search(catalog, "zzz", 10))
	assert.Empty(t, Search(catalog, "", 10))
	assert.Empty(t, Search(nil, "app", 10))
}

func TestFindFileTool_RequiresBuiltIndex(t *testing.T) {
	tool := NewFindFileTool(NewStore(), config.DefaultConfig())

	_, err := tool.Run(&FindFileRequest{Query: "app"})

	assert.ErrorIs(t, err, ErrIndexNotBuilt)
}

func TestFindFileTool_EmptyQueryRejected(t *testing.T) {
	tool := NewFindFileTool(NewStore(), config.DefaultConfig())

	_, err := tool.Run(&FindFileRequest{})

	assert.ErrorIs(t, err, ErrQueryRequired)
}

func TestFindFileTool_AppliesDefaultAndMaxLimits(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Tools.DefaultSearchLimit = 2
	cfg.Tools.MaxSearchLimit = 3

	store := NewStore()
	store.Swap(catalogOf("a/x.go", "b/x.go", "c/x.go", "d/x.go", "e/x.go"))
	tool := NewFindFileTool(store, cfg)

	resp, err := tool.Run(&FindFileRequest{Query: "x.go"})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)

	resp, err = tool.Run(&FindFileRequest{Query: "x.go", Limit: 50})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Total)
}

func TestRefreshIndexTool_SwapsNewCatalog(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"main.go": "package main"})

	store := NewStore()
	ix := NewIndexer(root, &stubMatcher{}, config.DefaultConfig(), zap.NewNop())
	tool := NewRefreshIndexTool(ix, store)

	resp, err := tool.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Files)
	require.NotNil(t, store.Load())
	assert.Contains(t, store.Load().Entries, "main.go")
}
