package gitutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cyclone1070/workbench/internal/config"
)

var testSignature = &object.Signature{
	Name:  "Test Author",
	Email: "test@example.com",
	When:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
}

// initRepo creates a repository with one committed file and returns its root.
func initRepo(t *testing.T) (string, *git.Repository) {
	t.Helper()
	root := t.TempDir()
	repo, err := git.PlainInit(root, false)
	require.NoError(t, err)
	commitFile(t, repo, root, "hello.txt", "hello\n", "initial commit")
	return root, repo
}

func commitFile(t *testing.T, repo *git.Repository, root, name, content, message string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(content), 0o644))
	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add(name)
	require.NoError(t, err)
	_, err = wt.Commit(message, &git.CommitOptions{Author: testSignature})
	require.NoError(t, err)
}

func TestOpen_NotARepository(t *testing.T) {
	_, err := Open(t.TempDir())
	assert.ErrorIs(t, err, ErrNotARepository)
}

func TestOpen_DoesNotSearchParents(t *testing.T) {
	root, _ := initRepo(t)
	nested := filepath.Join(root, "nested")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	_, err := Open(nested)

	assert.ErrorIs(t, err, ErrNotARepository)
}

func TestLog_ReturnsCommitsNewestFirst(t *testing.T) {
	root, repo := initRepo(t)
	commitFile(t, repo, root, "second.txt", "two\n", "add second file")

	svc, err := Open(root)
	require.NoError(t, err)

	commits, err := svc.Log(10)
	require.NoError(t, err)
	require.Len(t, commits, 2)
	assert.Equal(t, "add second file", commits[0].Message)
	assert.Equal(t, "initial commit", commits[1].Message)
	assert.Equal(t, "Test Author", commits[0].Author)
	assert.NotEmpty(t, commits[0].Hash)
}

func TestLog_RespectsLimit(t *testing.T) {
	root, repo := initRepo(t)
	commitFile(t, repo, root, "b.txt", "b\n", "second")
	commitFile(t, repo, root, "c.txt", "c\n", "third")

	svc, err := Open(root)
	require.NoError(t, err)

	commits, err := svc.Log(2)
	require.NoError(t, err)
	require.Len(t, commits, 2)
	assert.Equal(t, "third", commits[0].Message)
}

func TestLog_EmptyRepository(t *testing.T) {
	root := t.TempDir()
	_, err := git.PlainInit(root, false)
	require.NoError(t, err)

	svc, err := Open(root)
	require.NoError(t, err)

	_, err = svc.Log(10)
	assert.ErrorIs(t, err, ErrNoCommits)
}

func TestBranches_FlagsCurrent(t *testing.T) {
	root, _ := initRepo(t)

	svc, err := Open(root)
	require.NoError(t, err)

	branches, err := svc.Branches()
	require.NoError(t, err)
	require.Len(t, branches, 1)
	assert.True(t, branches[0].Current)
	assert.NotEmpty(t, branches[0].Hash)
}

func TestStatus_CleanAndDirty(t *testing.T) {
	root, _ := initRepo(t)

	svc, err := Open(root)
	require.NoError(t, err)

	changes, err := svc.Status()
	require.NoError(t, err)
	assert.Empty(t, changes)

	require.NoError(t, os.WriteFile(filepath.Join(root, "new.txt"), []byte("x"), 0o644))
	changes, err = svc.Status()
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, "new.txt", changes[0].Path)
}

func TestGitTool_Log(t *testing.T) {
	root, _ := initRepo(t)
	tool := NewGitTool(root, config.DefaultConfig())

	resp, err := tool.Log(&GitLogRequest{})

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
}

func TestGitTool_LogLimitClamped(t *testing.T) {
	root, repo := initRepo(t)
	commitFile(t, repo, root, "b.txt", "b\n", "second")
	commitFile(t, repo, root, "c.txt", "c\n", "third")

	cfg := config.DefaultConfig()
	cfg.Tools.MaxGitLogLimit = 2
	tool := NewGitTool(root, cfg)

	resp, err := tool.Log(&GitLogRequest{Limit: 100})

	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
}

func TestGitTool_Branches(t *testing.T) {
	root, _ := initRepo(t)
	tool := NewGitTool(root, config.DefaultConfig())

	resp, err := tool.Branches()

	require.NoError(t, err)
	require.Len(t, resp.Branches, 1)
	assert.Equal(t, resp.Branches[0].Name, resp.Current)
}

func TestGitTool_Status(t *testing.T) {
	root, _ := initRepo(t)
	tool := NewGitTool(root, config.DefaultConfig())

	resp, err := tool.Status()

	require.NoError(t, err)
	assert.True(t, resp.Clean)
	assert.NotEmpty(t, resp.Branch)
}

func TestGitTool_StatusBeforeFirstCommit(t *testing.T) {
	root := t.TempDir()
	_, err := git.PlainInit(root, false)
	require.NoError(t, err)
	tool := NewGitTool(root, config.DefaultConfig())

	resp, err := tool.Status()

	require.NoError(t, err)
	assert.True(t, resp.Clean)
	assert.Empty(t, resp.Branch)
}

func TestGitTool_OutsideRepository(t *testing.T) {
	tool := NewGitTool(t.TempDir(), config.DefaultConfig())

	_, err := tool.Log(&GitLogRequest{})

	assert.ErrorIs(t, err, ErrNotARepository)
}
