package server

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/Cyclone1070/workbench/internal/config"
	"github.com/Cyclone1070/workbench/internal/tool/directory"
	"github.com/Cyclone1070/workbench/internal/tool/file"
	"github.com/Cyclone1070/workbench/internal/tool/fsutil"
	"github.com/Cyclone1070/workbench/internal/tool/gitutil"
	"github.com/Cyclone1070/workbench/internal/tool/index"
	"github.com/Cyclone1070/workbench/internal/tool/pathutil"
	"github.com/Cyclone1070/workbench/internal/tool/todo"
)

// Name is the MCP server name advertised during initialization.
const Name = "workbench"

// Version is the server version string.
const Version = "0.3.0"

// Server wires the workspace tools to an MCP stdio transport. All logging
// goes to stderr; stdout carries the protocol stream.
type Server struct {
	mcpServer *server.MCPServer
	cfg       *config.Config
	logger    *zap.Logger

	readFile     *file.ReadFileTool
	writeFile    *file.WriteFileTool
	lineEdit     *file.LineEditTool
	patternEdit  *file.PatternEditTool
	count        *file.CountTool
	listDir      *directory.ListDirectoryTool
	createDir    *directory.CreateDirectoryTool
	findFile     *index.FindFileTool
	refreshIndex *index.RefreshIndexTool
	todoScan     *todo.ScanTool
	git          *gitutil.GitTool
}

// New builds a server rooted at workspaceRoot. The root must already be
// canonicalised via pathutil.CanonicaliseRoot.
func New(workspaceRoot string, cfg *config.Config, logger *zap.Logger) *Server {
	if cfg == nil {
		panic("cfg is required")
	}
	if logger == nil {
		panic("logger is required")
	}

	fs := fsutil.NewOSFileSystem()
	resolver := pathutil.NewResolver(workspaceRoot)

	var ignore interface {
		ShouldIgnore(relativePath string, isDir bool) bool
	}
	if matcher, err := gitutil.NewIgnoreMatcher(workspaceRoot, fs); err != nil {
		logger.Warn("gitignore unavailable, indexing everything", zap.Error(err))
		ignore = &gitutil.NoOpMatcher{}
	} else {
		ignore = matcher
	}

	store := index.NewStore()
	indexer := index.NewIndexer(workspaceRoot, ignore, cfg, logger)

	s := &Server{
		cfg:    cfg,
		logger: logger,

		readFile:     file.NewReadFileTool(fs, resolver, cfg),
		writeFile:    file.NewWriteFileTool(fs, resolver, cfg),
		lineEdit:     file.NewLineEditTool(fs, resolver, cfg),
		patternEdit:  file.NewPatternEditTool(fs, resolver, cfg),
		count:        file.NewCountTool(fs, resolver, cfg),
		listDir:      directory.NewListDirectoryTool(fs, resolver, cfg),
		createDir:    directory.NewCreateDirectoryTool(fs, resolver),
		findFile:     index.NewFindFileTool(store, cfg),
		refreshIndex: index.NewRefreshIndexTool(indexer, store),
		todoScan:     todo.NewScanTool(workspaceRoot, fs, store, cfg, logger),
		git:          gitutil.NewGitTool(workspaceRoot, cfg),
	}

	s.mcpServer = server.NewMCPServer(
		Name,
		Version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	s.registerTools()

	return s
}

// BuildIndex performs the initial index build. Called once at startup,
// before or alongside serving; searches before completion report the
// index as not built yet.
func (s *Server) BuildIndex(ctx context.Context) error {
	_, err := s.refreshIndex.Run(ctx)
	return err
}

// ServeStdio serves MCP over stdin/stdout until the client disconnects.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("read_file",
		mcp.WithDescription("Read a file in the workspace, optionally restricted to an inclusive 1-based line range."),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Workspace-relative or absolute path inside the workspace"),
		),
		mcp.WithNumber("line_start",
			mcp.Description("First line to read (1-based, inclusive)"),
		),
		mcp.WithNumber("line_end",
			mcp.Description("Last line to read (1-based, inclusive)"),
		),
	), s.handleReadFile)

	s.mcpServer.AddTool(mcp.NewTool("write_file",
		mcp.WithDescription("Create a new file. Fails if the file already exists or its parent directory is missing."),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path of the file to create"),
		),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("Full file content"),
		),
	), s.handleWriteFile)

	s.mcpServer.AddTool(mcp.NewTool("edit_lines",
		mcp.WithDescription("Replace an inclusive 1-based line range with new content. Preserves the file's line endings and returns a unified diff."),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path of the file to edit"),
		),
		mcp.WithNumber("line_start",
			mcp.Required(),
			mcp.Description("First line to replace (1-based, inclusive)"),
		),
		mcp.WithNumber("line_end",
			mcp.Description("Last line to replace (defaults to line_start)"),
		),
		mcp.WithString("new_content",
			mcp.Description("Replacement content; may span a different number of lines"),
		),
	), s.handleEditLines)

	s.mcpServer.AddTool(mcp.NewTool("apply_edits",
		mcp.WithDescription("Apply a sequence of old-text to new-text substitutions. Falls back to whitespace-insensitive block matching with indentation inference when no exact match exists. All edits apply atomically or none do."),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path of the file to edit"),
		),
		mcp.WithArray("edits",
			mcp.Required(),
			mcp.Description("Ordered list of {old_text, new_text} operations"),
			mcp.Items(map[string]any{
				"type": "object",
				"properties": map[string]any{
					"old_text": map[string]any{"type": "string"},
					"new_text": map[string]any{"type": "string"},
				},
				"required": []string{"old_text", "new_text"},
			}),
		),
		mcp.WithBoolean("dry_run",
			mcp.Description("Compute the diff without writing"),
		),
	), s.handleEditPattern)

	s.mcpServer.AddTool(mcp.NewTool("count",
		mcp.WithDescription("Report line, word, and byte counts for a file."),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path of the file to count"),
		),
	), s.handleCount)

	s.mcpServer.AddTool(mcp.NewTool("list_directory",
		mcp.WithDescription("List the immediate children of a workspace directory, directories first."),
		mcp.WithString("path",
			mcp.Description("Directory to list, defaults to the workspace root"),
		),
	), s.handleListDirectory)

	s.mcpServer.AddTool(mcp.NewTool("create_directory",
		mcp.WithDescription("Create a directory inside the workspace, including missing parents."),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Directory path to create"),
		),
	), s.handleCreateDirectory)

	s.mcpServer.AddTool(mcp.NewTool("find_file",
		mcp.WithDescription("Find workspace files by name or path fragment. Exact matches rank first, then shorter paths."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("File name or path fragment, case-insensitive"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of results"),
		),
	), s.handleFindFile)

	s.mcpServer.AddTool(mcp.NewTool("refresh_index",
		mcp.WithDescription("Rebuild the workspace file index. Searches keep using the previous snapshot until the rebuild completes."),
	), s.handleRefreshIndex)

	s.mcpServer.AddTool(mcp.NewTool("todo_scan",
		mcp.WithDescription("Find TODO, FIXME, HACK, and XXX comments across indexed text files."),
		mcp.WithString("marker",
			mcp.Description("Restrict to one marker (TODO, FIXME, HACK, or XXX)"),
		),
		mcp.WithString("path_prefix",
			mcp.Description("Restrict to files under a workspace-relative prefix"),
		),
	), s.handleTodoScan)

	s.mcpServer.AddTool(mcp.NewTool("git_log",
		mcp.WithDescription("Show recent commits from HEAD, newest first."),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of commits"),
		),
	), s.handleGitLog)

	s.mcpServer.AddTool(mcp.NewTool("git_branches",
		mcp.WithDescription("List local branches and mark the current one."),
	), s.handleGitBranches)

	s.mcpServer.AddTool(mcp.NewTool("git_status",
		mcp.WithDescription("Show changed paths in the worktree."),
	), s.handleGitStatus)
}
