package index

import (
	"path/filepath"
	"strings"
)

// Priority ranks, lower is more important. Used to break score ties in search.
const (
	PriorityCritical = 1
	PrioritySource   = 2
	PriorityConfig   = 3
	PriorityDocs     = 4
	PriorityOther    = 5
)

// criticalNames are project manifests and entry points that should surface
// first when scores tie.
var criticalNames = map[string]struct{}{
	"package.json":     {},
	"go.mod":           {},
	"cargo.toml":       {},
	"pyproject.toml":   {},
	"requirements.txt": {},
	"makefile":         {},
	"dockerfile":       {},
	"readme.md":        {},
	"readme":           {},
	"tsconfig.json":    {},
}

var sourceExtensions = map[string]struct{}{
	".go":    {},
	".js":    {},
	".jsx":   {},
	".ts":    {},
	".tsx":   {},
	".py":    {},
	".rs":    {},
	".java":  {},
	".kt":    {},
	".swift": {},
	".rb":    {},
	".php":   {},
	".c":     {},
	".h":     {},
	".cpp":   {},
	".hpp":   {},
	".cs":    {},
	".sh":    {},
	".sql":   {},
}

var configExtensions = map[string]struct{}{
	".json": {},
	".yaml": {},
	".yml":  {},
	".toml": {},
	".ini":  {},
	".xml":  {},
	".env":  {},
}

var docExtensions = map[string]struct{}{
	".md":   {},
	".rst":  {},
	".txt":  {},
	".adoc": {},
}

// priorityFor classifies a file name into a priority rank.
func priorityFor(name string) int {
	if _, ok := criticalNames[strings.ToLower(name)]; ok {
		return PriorityCritical
	}
	ext := strings.ToLower(filepath.Ext(name))
	if _, ok := sourceExtensions[ext]; ok {
		return PrioritySource
	}
	if _, ok := configExtensions[ext]; ok {
		return PriorityConfig
	}
	if _, ok := docExtensions[ext]; ok {
		return PriorityDocs
	}
	return PriorityOther
}
