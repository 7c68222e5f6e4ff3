package gitutil

import (
	"errors"
	"fmt"
)

var (
	// ErrNotARepository is returned when the workspace root is not inside a
	// git repository.
	ErrNotARepository = errors.New("workspace is not a git repository")
	// ErrNoCommits is returned when the repository has no commits yet.
	ErrNoCommits = errors.New("repository has no commits")
)

// GitignoreReadError is returned when .gitignore cannot be read.
type GitignoreReadError struct {
	Path  string
	Cause error
}

func (e *GitignoreReadError) Error() string {
	return fmt.Sprintf("failed to read .gitignore at %s: %v", e.Path, e.Cause)
}

func (e *GitignoreReadError) Unwrap() error {
	return e.Cause
}
