package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/Cyclone1070/workbench/internal/tool/directory"
	"github.com/Cyclone1070/workbench/internal/tool/file"
	"github.com/Cyclone1070/workbench/internal/tool/gitutil"
	"github.com/Cyclone1070/workbench/internal/tool/index"
	"github.com/Cyclone1070/workbench/internal/tool/todo"
)

// decodeArgs maps raw MCP arguments onto a typed request. Weak typing
// tolerates JSON numbers arriving as float64.
func decodeArgs(req mcp.CallToolRequest, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "json",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(req.GetArguments())
}

// toolError converts a tool failure into an MCP error result, appending a
// recovery hint where a retry with different input is likely to succeed.
func (s *Server) toolError(name string, err error) *mcp.CallToolResult {
	s.logger.Debug("tool call failed", zap.String("tool", name), zap.Error(err))

	message := err.Error()
	switch {
	case errors.Is(err, file.ErrInvalidRange):
		message += "\nRe-read the file with read_file to get current line numbers, then retry."
	case errors.Is(err, file.ErrNoMatchFound):
		message += "\nold_text must match the file exactly. Use read_file to check the current content, then retry."
	case errors.Is(err, index.ErrIndexNotBuilt):
		message += "\nRun refresh_index first."
	}
	return mcp.NewToolResultError(message)
}

// jsonResult renders a response struct as indented JSON text content.
func jsonResult(v any) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode response: %v", err))
	}
	return mcp.NewToolResultText(string(data))
}

func (s *Server) handleReadFile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var r file.ReadFileRequest
	if err := decodeArgs(req, &r); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	resp, err := s.readFile.Run(ctx, &r)
	if err != nil {
		return s.toolError("read_file", err), nil
	}
	return mcp.NewToolResultText(resp.Content), nil
}

func (s *Server) handleWriteFile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var r file.WriteFileRequest
	if err := decodeArgs(req, &r); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	resp, err := s.writeFile.Run(ctx, &r)
	if err != nil {
		return s.toolError("write_file", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Created %s (%d bytes).", resp.RelativePath, resp.BytesWritten)), nil
}

func (s *Server) handleEditLines(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var r file.LineEditRequest
	if err := decodeArgs(req, &r); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	resp, err := s.lineEdit.Run(ctx, &r)
	if err != nil {
		return s.toolError("edit_lines", err), nil
	}
	return mcp.NewToolResultText(resp.Summary + "\n\n" + resp.Diff), nil
}

func (s *Server) handleEditPattern(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var r file.PatternEditRequest
	if err := decodeArgs(req, &r); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	resp, err := s.patternEdit.Run(ctx, &r)
	if err != nil {
		return s.toolError("apply_edits", err), nil
	}
	header := fmt.Sprintf("Applied %d edit(s) to %s.", resp.EditsApplied, resp.RelativePath)
	if resp.DryRun {
		header = fmt.Sprintf("Dry run: %d edit(s) would apply to %s.", resp.EditsApplied, resp.RelativePath)
	}
	return mcp.NewToolResultText(header + "\n\n" + resp.Diff), nil
}

func (s *Server) handleCount(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var r file.CountRequest
	if err := decodeArgs(req, &r); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	resp, err := s.count.Run(ctx, &r)
	if err != nil {
		return s.toolError("count", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s: %d lines, %d words, %d bytes",
		resp.RelativePath, resp.Lines, resp.Words, resp.Bytes)), nil
}

func (s *Server) handleListDirectory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var r directory.ListDirectoryRequest
	if err := decodeArgs(req, &r); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	resp, err := s.listDir.Run(ctx, &r)
	if err != nil {
		return s.toolError("list_directory", err), nil
	}
	return jsonResult(resp), nil
}

func (s *Server) handleCreateDirectory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var r directory.CreateDirectoryRequest
	if err := decodeArgs(req, &r); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	resp, err := s.createDir.Run(ctx, &r)
	if err != nil {
		return s.toolError("create_directory", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Created directory %s.", resp.RelativePath)), nil
}

func (s *Server) handleFindFile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var r index.FindFileRequest
	if err := decodeArgs(req, &r); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	resp, err := s.findFile.Run(&r)
	if err != nil {
		return s.toolError("find_file", err), nil
	}
	return jsonResult(resp), nil
}

func (s *Server) handleRefreshIndex(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	resp, err := s.refreshIndex.Run(ctx)
	if err != nil {
		return s.toolError("refresh_index", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Indexed %d files in %s.", resp.Files, resp.Duration)), nil
}

func (s *Server) handleTodoScan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var r todo.ScanRequest
	if err := decodeArgs(req, &r); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	resp, err := s.todoScan.Run(&r)
	if err != nil {
		return s.toolError("todo_scan", err), nil
	}
	return jsonResult(resp), nil
}

func (s *Server) handleGitLog(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var r gitutil.GitLogRequest
	if err := decodeArgs(req, &r); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	resp, err := s.git.Log(&r)
	if err != nil {
		return s.toolError("git_log", err), nil
	}
	return jsonResult(resp), nil
}

func (s *Server) handleGitBranches(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	resp, err := s.git.Branches()
	if err != nil {
		return s.toolError("git_branches", err), nil
	}
	return jsonResult(resp), nil
}

func (s *Server) handleGitStatus(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	resp, err := s.git.Status()
	if err != nil {
		return s.toolError("git_status", err), nil
	}
	return jsonResult(resp), nil
}
