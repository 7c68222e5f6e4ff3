package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Resolver validates paths against a workspace boundary. Every filesystem
// operation must go through Resolve before touching disk; results are never
// cached, so a path is re-validated on each call.
type Resolver struct {
	workspaceRoot string
}

// NewResolver creates a new path resolver for the given canonical workspace root.
func NewResolver(workspaceRoot string) *Resolver {
	return &Resolver{
		workspaceRoot: workspaceRoot,
	}
}

// WorkspaceRoot returns the canonical workspace root the resolver guards.
func (r *Resolver) WorkspaceRoot() string {
	return r.workspaceRoot
}

// CanonicaliseRoot canonicalises a workspace root path by making it absolute and resolving symlinks.
// Returns an error if the path doesn't exist or isn't a directory.
func CanonicaliseRoot(root string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", &WorkspaceRootError{Root: root, Cause: err}
	}

	resolved, err := filepath.EvalSymlinks(absRoot)
	if err != nil {
		return "", &WorkspaceRootError{Root: absRoot, Cause: err}
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", &WorkspaceRootError{Root: resolved, Cause: err}
	}
	if !info.IsDir() {
		return "", &WorkspaceRootError{Root: resolved, Cause: ErrNotADirectory}
	}
	return resolved, nil
}

// Resolve normalises a path and ensures it's within the workspace root.
// It expands a leading tilde, joins relative paths to the root, and resolves
// symlinks so a link pointing outside the workspace is rejected even though
// the link itself lives inside. For paths that don't exist yet, the parent
// directory is resolved and checked instead; a missing parent fails with
// ErrParentMissing. Returns the absolute resolved path and the
// workspace-relative path (empty string for the root itself).
func (r *Resolver) Resolve(path string) (abs string, rel string, err error) {
	if r.workspaceRoot == "" {
		return "", "", ErrWorkspaceRootNotSet
	}

	// Tilde expansion
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", "", fmt.Errorf("failed to expand tilde: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}

	var candidate string
	if filepath.IsAbs(path) {
		candidate = filepath.Clean(path)
	} else {
		candidate = filepath.Clean(filepath.Join(r.workspaceRoot, path))
	}

	// Lexical containment check before touching the filesystem
	if err := r.checkContained(candidate); err != nil {
		return "", "", err
	}

	// Resolve symlinks on the target; for not-yet-existing targets fall back
	// to the parent directory and re-attach the base name.
	resolved, err := filepath.EvalSymlinks(candidate)
	if err != nil {
		if !os.IsNotExist(err) {
			return "", "", fmt.Errorf("failed to resolve path %s: %w", candidate, err)
		}
		parent := filepath.Dir(candidate)
		resolvedParent, perr := filepath.EvalSymlinks(parent)
		if perr != nil {
			if os.IsNotExist(perr) {
				return "", "", fmt.Errorf("%w: %s", ErrParentMissing, parent)
			}
			return "", "", fmt.Errorf("failed to resolve parent %s: %w", parent, perr)
		}
		resolved = filepath.Join(resolvedParent, filepath.Base(candidate))
	}

	// Re-check containment against the symlink-free path
	if err := r.checkContained(resolved); err != nil {
		return "", "", err
	}

	relPath, err := filepath.Rel(r.workspaceRoot, resolved)
	if err != nil {
		return "", "", ErrOutsideWorkspace
	}
	if relPath == "." {
		relPath = ""
	}

	return resolved, filepath.ToSlash(relPath), nil
}

// checkContained verifies that abs is the workspace root or a descendant of it.
func (r *Resolver) checkContained(abs string) error {
	rel, err := filepath.Rel(r.workspaceRoot, abs)
	if err != nil {
		return ErrOutsideWorkspace
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return ErrOutsideWorkspace
	}
	return nil
}
