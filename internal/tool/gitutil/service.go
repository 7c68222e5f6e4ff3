package gitutil

import (
	"errors"
	"sort"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// CommitInfo describes a single commit in the log.
type CommitInfo struct {
	Hash    string `json:"hash"`
	Author  string `json:"author"`
	Email   string `json:"email"`
	When    string `json:"when"`
	Message string `json:"message"`
}

// BranchInfo describes a local branch.
type BranchInfo struct {
	Name    string `json:"name"`
	Hash    string `json:"hash"`
	Current bool   `json:"current"`
}

// StatusEntry describes one changed path in the worktree.
type StatusEntry struct {
	Path     string `json:"path"`
	Staging  string `json:"staging"`
	Worktree string `json:"worktree"`
}

// Service provides read-only access to the workspace git repository.
type Service struct {
	repo *git.Repository
}

// Open opens the repository rooted exactly at workspaceRoot. Parent
// directories are not searched, so a workspace outside any repository
// gets ErrNotARepository rather than a stray ancestor repo.
func Open(workspaceRoot string) (*Service, error) {
	if workspaceRoot == "" {
		panic("workspaceRoot is required")
	}
	repo, err := git.PlainOpenWithOptions(workspaceRoot, &git.PlainOpenOptions{DetectDotGit: false})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, ErrNotARepository
		}
		return nil, err
	}
	return &Service{repo: repo}, nil
}

// Head returns the short name and hash of the current HEAD reference.
func (s *Service) Head() (name string, hash string, err error) {
	ref, err := s.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return "", "", ErrNoCommits
		}
		return "", "", err
	}
	return ref.Name().Short(), ref.Hash().String(), nil
}

// Log returns up to limit commits starting from HEAD, newest first.
func (s *Service) Log(limit int) ([]CommitInfo, error) {
	ref, err := s.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, ErrNoCommits
		}
		return nil, err
	}

	iter, err := s.repo.Log(&git.LogOptions{From: ref.Hash()})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var commits []CommitInfo
	err = iter.ForEach(func(c *object.Commit) error {
		commits = append(commits, CommitInfo{
			Hash:    c.Hash.String(),
			Author:  c.Author.Name,
			Email:   c.Author.Email,
			When:    c.Author.When.UTC().Format(time.RFC3339),
			Message: c.Message,
		})
		if limit > 0 && len(commits) >= limit {
			return storer.ErrStop
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return commits, nil
}

// Branches returns all local branches, with the current one flagged.
func (s *Service) Branches() ([]BranchInfo, error) {
	var currentName string
	if ref, err := s.repo.Head(); err == nil && ref.Name().IsBranch() {
		currentName = ref.Name().Short()
	}

	iter, err := s.repo.Branches()
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var branches []BranchInfo
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().Short()
		branches = append(branches, BranchInfo{
			Name:    name,
			Hash:    ref.Hash().String(),
			Current: name == currentName,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(branches, func(i, j int) bool {
		return branches[i].Name < branches[j].Name
	})
	return branches, nil
}

// Status returns the changed paths in the worktree, sorted by path.
// A clean worktree yields an empty slice.
func (s *Service) Status() ([]StatusEntry, error) {
	wt, err := s.repo.Worktree()
	if err != nil {
		return nil, err
	}
	status, err := wt.Status()
	if err != nil {
		return nil, err
	}

	var entries []StatusEntry
	for path, fileStatus := range status {
		entries = append(entries, StatusEntry{
			Path:     path,
			Staging:  string(fileStatus.Staging),
			Worktree: string(fileStatus.Worktree),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Path < entries[j].Path
	})
	return entries, nil
}
