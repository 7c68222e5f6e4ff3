package index

import (
	"sort"
	"strings"
)

// Match scores, higher is better. Partial matches on shorter paths get a
// small bonus so "src/app.js" outranks "src/deep/nested/app.js".
const (
	scoreExactPath    = 1000
	scoreExactName    = 800
	scorePathContains = 500
	scoreNameContains = 300
	shortPathBonusCap = 100
)

// Match is a single search hit.
type Match struct {
	Entry Entry
	Score int
}

// Search matches query against the catalog and returns up to limit hits,
// best first. Matching is case-insensitive. A nil catalog yields no hits.
func Search(catalog *Catalog, query string, limit int) []Match {
	if catalog == nil || query == "" || limit <= 0 {
		return nil
	}
	q := strings.ToLower(query)

	var matches []Match
	for _, entry := range catalog.Entries {
		score := scoreEntry(entry, q)
		if score == 0 {
			continue
		}
		matches = append(matches, Match{Entry: entry, Score: score})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		if matches[i].Entry.Priority != matches[j].Entry.Priority {
			return matches[i].Entry.Priority < matches[j].Entry.Priority
		}
		return matches[i].Entry.RelativePath < matches[j].Entry.RelativePath
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

func scoreEntry(entry Entry, q string) int {
	relLower := strings.ToLower(entry.RelativePath)
	nameLower := strings.ToLower(entry.Name)

	switch {
	case relLower == q:
		return scoreExactPath
	case nameLower == q:
		return scoreExactName + shortPathBonus(relLower)
	case strings.Contains(relLower, q):
		return scorePathContains + shortPathBonus(relLower)
	case strings.Contains(nameLower, q):
		return scoreNameContains + shortPathBonus(relLower)
	}
	return 0
}

func shortPathBonus(rel string) int {
	bonus := shortPathBonusCap - len(rel)
	if bonus < 0 {
		return 0
	}
	return bonus
}
