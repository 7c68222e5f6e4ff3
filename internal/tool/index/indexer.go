package index

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Cyclone1070/workbench/internal/config"
)

// skippedDirs are directory names that are never descended into, regardless
// of gitignore rules. They hold generated or third-party content.
var skippedDirs = map[string]struct{}{
	"node_modules": {},
	"vendor":       {},
	"venv":         {},
	"dist":         {},
	"build":        {},
	"target":       {},
	"out":          {},
	"coverage":     {},
	"__pycache__":  {},
	"log":          {},
	"logs":         {},
	"tmp":          {},
}

// ignoreMatcher defines the minimal gitignore interface needed by the indexer.
type ignoreMatcher interface {
	ShouldIgnore(relativePath string, isDir bool) bool
}

// Indexer walks the workspace and produces catalog snapshots.
type Indexer struct {
	workspaceRoot string
	ignore        ignoreMatcher
	cfg           *config.Config
	logger        *zap.Logger
}

// NewIndexer creates an indexer rooted at workspaceRoot.
func NewIndexer(workspaceRoot string, ignore ignoreMatcher, cfg *config.Config, logger *zap.Logger) *Indexer {
	if workspaceRoot == "" {
		panic("workspaceRoot is required")
	}
	if ignore == nil {
		panic("ignore is required")
	}
	if cfg == nil {
		panic("cfg is required")
	}
	if logger == nil {
		panic("logger is required")
	}
	return &Indexer{
		workspaceRoot: workspaceRoot,
		ignore:        ignore,
		cfg:           cfg,
		logger:        logger,
	}
}

// Build walks the workspace and returns a fresh catalog snapshot. Unreadable
// entries are logged and skipped rather than failing the whole build.
func (ix *Indexer) Build(ctx context.Context) (*Catalog, error) {
	entries := make(map[string]Entry)
	visited := 0

	err := filepath.WalkDir(ix.workspaceRoot, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			ix.logger.Warn("skipping unreadable entry", zap.String("path", path), zap.Error(err))
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if path == ix.workspaceRoot {
			return nil
		}

		rel, relErr := filepath.Rel(ix.workspaceRoot, path)
		if relErr != nil {
			ix.logger.Warn("skipping entry with unresolvable path", zap.String("path", path), zap.Error(relErr))
			return nil
		}
		rel = filepath.ToSlash(rel)
		name := d.Name()

		if d.IsDir() {
			if ix.shouldSkipDir(name, rel) {
				return fs.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}
		if isHiddenName(name) && !isHiddenException(name) {
			return nil
		}
		if ix.ignore.ShouldIgnore(rel, false) {
			return nil
		}

		info, infoErr := d.Info()
		if infoErr != nil {
			ix.logger.Warn("skipping unreadable entry", zap.String("path", path), zap.Error(infoErr))
			return nil
		}
		if info.Size() > ix.cfg.Index.MaxFileSize {
			return nil
		}

		entries[rel] = Entry{
			RelativePath: rel,
			Name:         name,
			Extension:    strings.ToLower(filepath.Ext(name)),
			Size:         info.Size(),
			ModTime:      info.ModTime().UnixMilli(),
			Priority:     priorityFor(name),
		}

		visited++
		if ix.cfg.Index.ProgressInterval > 0 && visited%ix.cfg.Index.ProgressInterval == 0 {
			ix.logger.Info("indexing in progress", zap.Int("files", visited))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ix.logger.Info("index built", zap.Int("files", len(entries)))
	return &Catalog{Entries: entries, BuiltAt: time.Now()}, nil
}

func (ix *Indexer) shouldSkipDir(name, rel string) bool {
	if _, skip := skippedDirs[name]; skip {
		return true
	}
	if isHiddenName(name) {
		return true
	}
	return ix.ignore.ShouldIgnore(rel, true)
}

func isHiddenName(name string) bool {
	return strings.HasPrefix(name, ".")
}

// isHiddenException reports whether a hidden file is still worth indexing.
func isHiddenException(name string) bool {
	if name == ".gitignore" {
		return true
	}
	return strings.HasSuffix(name, ".env.example")
}
