package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Cyclone1070/workbench/internal/config"
	"github.com/Cyclone1070/workbench/internal/tool/fsutil"
	"github.com/Cyclone1070/workbench/internal/tool/pathutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFile(t *testing.T) {
	cfg := config.DefaultConfig()
	fs := fsutil.NewOSFileSystem()

	t.Run("creates new file", func(t *testing.T) {
		root, resolver := newWorkspace(t)

		tool := NewWriteFileTool(fs, resolver, cfg)
		resp, err := tool.Run(context.Background(), &WriteFileRequest{
			Path: "new.txt", Content: "hello\n",
		})

		require.NoError(t, err)
		assert.Equal(t, "new.txt", resp.RelativePath)
		assert.Equal(t, 6, resp.BytesWritten)

		data, err := os.ReadFile(filepath.Join(root, "new.txt"))
		require.NoError(t, err)
		assert.Equal(t, "hello\n", string(data))
	})

	t.Run("existing file rejected", func(t *testing.T) {
		root, resolver := newWorkspace(t)
		writeFixture(t, root, "taken.txt", "old\n")

		tool := NewWriteFileTool(fs, resolver, cfg)
		_, err := tool.Run(context.Background(), &WriteFileRequest{
			Path: "taken.txt", Content: "new\n",
		})

		require.ErrorIs(t, err, ErrFileExists)
		data, readErr := os.ReadFile(filepath.Join(root, "taken.txt"))
		require.NoError(t, readErr)
		assert.Equal(t, "old\n", string(data))
	})

	t.Run("missing parent rejected", func(t *testing.T) {
		_, resolver := newWorkspace(t)

		tool := NewWriteFileTool(fs, resolver, cfg)
		_, err := tool.Run(context.Background(), &WriteFileRequest{
			Path: "no/such/dir/f.txt", Content: "x",
		})

		assert.ErrorIs(t, err, pathutil.ErrParentMissing)
	})

	t.Run("escape rejected", func(t *testing.T) {
		_, resolver := newWorkspace(t)

		tool := NewWriteFileTool(fs, resolver, cfg)
		_, err := tool.Run(context.Background(), &WriteFileRequest{
			Path: "../outside.txt", Content: "x",
		})

		assert.ErrorIs(t, err, pathutil.ErrOutsideWorkspace)
	})

	t.Run("binary content rejected", func(t *testing.T) {
		_, resolver := newWorkspace(t)

		tool := NewWriteFileTool(fs, resolver, cfg)
		_, err := tool.Run(context.Background(), &WriteFileRequest{
			Path: "bin.dat", Content: "ab\x00cd",
		})

		assert.ErrorIs(t, err, ErrBinaryFile)
	})

	t.Run("oversized content rejected", func(t *testing.T) {
		_, resolver := newWorkspace(t)

		smallCfg := config.DefaultConfig()
		smallCfg.Tools.MaxFileSize = 4
		tool := NewWriteFileTool(fs, resolver, smallCfg)
		_, err := tool.Run(context.Background(), &WriteFileRequest{
			Path: "big.txt", Content: "way too long",
		})

		assert.ErrorIs(t, err, ErrFileTooLarge)
	})
}

func TestCount(t *testing.T) {
	cfg := config.DefaultConfig()
	fs := fsutil.NewOSFileSystem()

	t.Run("counts lines words and bytes", func(t *testing.T) {
		root, resolver := newWorkspace(t)
		writeFixture(t, root, "f.txt", "one two\nthree\n")

		tool := NewCountTool(fs, resolver, cfg)
		resp, err := tool.Run(context.Background(), &CountRequest{Path: "f.txt"})

		require.NoError(t, err)
		assert.Equal(t, 2, resp.Lines)
		assert.Equal(t, 3, resp.Words)
		assert.Equal(t, int64(len("one two\nthree\n")), resp.Bytes)
	})

	t.Run("CRLF file counts the same", func(t *testing.T) {
		root, resolver := newWorkspace(t)
		writeFixture(t, root, "f.txt", "one two\r\nthree\r\n")

		tool := NewCountTool(fs, resolver, cfg)
		resp, err := tool.Run(context.Background(), &CountRequest{Path: "f.txt"})

		require.NoError(t, err)
		assert.Equal(t, 2, resp.Lines)
		assert.Equal(t, 3, resp.Words)
	})

	t.Run("missing file", func(t *testing.T) {
		_, resolver := newWorkspace(t)

		tool := NewCountTool(fs, resolver, cfg)
		_, err := tool.Run(context.Background(), &CountRequest{Path: "nope.txt"})

		assert.ErrorIs(t, err, ErrFileMissing)
	})
}
