package gitutil

import (
	"errors"

	"github.com/Cyclone1070/workbench/internal/config"
)

// GitLogRequest asks for recent commit history.
type GitLogRequest struct {
	Limit int `json:"limit,omitempty"`
}

// Validate applies the configured default and maximum limits.
func (r *GitLogRequest) Validate(cfg *config.Config) error {
	if r.Limit <= 0 {
		r.Limit = cfg.Tools.DefaultGitLogLimit
	}
	if r.Limit > cfg.Tools.MaxGitLogLimit {
		r.Limit = cfg.Tools.MaxGitLogLimit
	}
	return nil
}

// GitLogResponse lists commits, newest first.
type GitLogResponse struct {
	Commits []CommitInfo `json:"commits"`
	Total   int          `json:"total"`
}

// GitBranchesResponse lists local branches.
type GitBranchesResponse struct {
	Branches []BranchInfo `json:"branches"`
	Current  string       `json:"current"`
}

// GitStatusResponse lists changed worktree paths.
type GitStatusResponse struct {
	Branch  string        `json:"branch"`
	Clean   bool          `json:"clean"`
	Changes []StatusEntry `json:"changes"`
}

// GitTool exposes read-only repository queries. The repository is opened
// per call so a repo initialised after startup is still picked up.
type GitTool struct {
	workspaceRoot string
	cfg           *config.Config
}

// NewGitTool creates a git tool rooted at workspaceRoot.
func NewGitTool(workspaceRoot string, cfg *config.Config) *GitTool {
	if workspaceRoot == "" {
		panic("workspaceRoot is required")
	}
	if cfg == nil {
		panic("cfg is required")
	}
	return &GitTool{workspaceRoot: workspaceRoot, cfg: cfg}
}

// Log returns recent commits from HEAD.
func (t *GitTool) Log(req *GitLogRequest) (*GitLogResponse, error) {
	if err := req.Validate(t.cfg); err != nil {
		return nil, err
	}
	svc, err := Open(t.workspaceRoot)
	if err != nil {
		return nil, err
	}
	commits, err := svc.Log(req.Limit)
	if err != nil {
		return nil, err
	}
	return &GitLogResponse{Commits: commits, Total: len(commits)}, nil
}

// Branches returns all local branches.
func (t *GitTool) Branches() (*GitBranchesResponse, error) {
	svc, err := Open(t.workspaceRoot)
	if err != nil {
		return nil, err
	}
	branches, err := svc.Branches()
	if err != nil {
		return nil, err
	}
	resp := &GitBranchesResponse{Branches: branches}
	for _, b := range branches {
		if b.Current {
			resp.Current = b.Name
			break
		}
	}
	return resp, nil
}

// Status returns the worktree status.
func (t *GitTool) Status() (*GitStatusResponse, error) {
	svc, err := Open(t.workspaceRoot)
	if err != nil {
		return nil, err
	}
	branch, _, err := svc.Head()
	if err != nil && !errors.Is(err, ErrNoCommits) {
		return nil, err
	}
	changes, err := svc.Status()
	if err != nil {
		return nil, err
	}
	return &GitStatusResponse{
		Branch:  branch,
		Clean:   len(changes) == 0,
		Changes: changes,
	}, nil
}
