// Package main runs the workbench MCP server over stdio. It exposes safe
// file editing, indexed file search, and read-only git queries for one
// workspace directory.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Cyclone1070/workbench/internal/config"
	"github.com/Cyclone1070/workbench/internal/server"
	"github.com/Cyclone1070/workbench/internal/tool/pathutil"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "workbench: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	rootFlag := flag.String("root", "", "workspace root directory (defaults to $WORKBENCH_ROOT, then the current directory)")
	debugFlag := flag.Bool("debug", false, "enable debug logging")
	versionFlag := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("%s %s\n", server.Name, server.Version)
		return nil
	}

	logger, err := newLogger(*debugFlag)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	root, err := resolveRoot(*rootFlag)
	if err != nil {
		return err
	}
	logger.Info("starting server",
		zap.String("version", server.Version),
		zap.String("workspace_root", root),
	)

	s := server.New(root, cfg, logger)

	// Build the index in the background so the server answers its first
	// request without waiting on a large workspace walk.
	go func() {
		if err := s.BuildIndex(context.Background()); err != nil {
			logger.Warn("initial index build failed", zap.Error(err))
		}
	}()

	return s.ServeStdio()
}

// resolveRoot picks the workspace root from the flag, the WORKBENCH_ROOT
// environment variable, or the current directory, then canonicalises it.
func resolveRoot(flagValue string) (string, error) {
	root := flagValue
	if root == "" {
		root = os.Getenv("WORKBENCH_ROOT")
	}
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to determine working directory: %w", err)
		}
		root = cwd
	}
	canonical, err := pathutil.CanonicaliseRoot(root)
	if err != nil {
		return "", fmt.Errorf("invalid workspace root: %w", err)
	}
	return canonical, nil
}

// newLogger builds a stderr-only logger. Stdout belongs to the MCP stream
// and must never receive log output.
func newLogger(debug bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}
