package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/vk/dxmodel/internal/build"
	"github.com/vk/dxmodel/internal/cli"
	"github.com/vk/dxmodel/internal/ctxlog"
	"github.com/vk/dxmodel/internal/descriptor"
	"github.com/vk/dxmodel/internal/problem"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(os.Stdout, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing.
func run(outW io.Writer, args []string) error {
	opts, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	logger := newLogger(opts.LogLevel, opts.LogFormat, os.Stderr)
	ctx := ctxlog.WithLogger(context.Background(), logger)

	src, err := newFileSource(opts.DescriptorPath)
	if err != nil {
		return &cli.ExitError{Code: 2, Message: err.Error()}
	}

	builder, req, err := build.NewRequest(ctx, src, opts.Config)
	if err != nil {
		return fmt.Errorf("descbuild: wiring build request: %w", err)
	}

	result, err := builder.Build(ctx, req)
	if buildErr, ok := err.(*problem.BuildFailedError); ok {
		printProblems(outW, buildErr.Problems)
		return &cli.ExitError{Code: 1, Message: buildErr.Error()}
	}
	if err != nil {
		return fmt.Errorf("descbuild: %w", err)
	}

	printProblems(outW, result.Problems)
	return printEffectiveModel(outW, result.EffectiveModel)
}

func newLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if formatStr == "json" {
		handler = slog.NewJSONHandler(outW, opts)
	} else {
		handler = slog.NewTextHandler(outW, opts)
	}
	return slog.New(handler)
}

func printProblems(outW io.Writer, problems []problem.Problem) {
	for _, p := range problems {
		fmt.Fprintln(outW, p.Error())
	}
}

func printEffectiveModel(outW io.Writer, model *descriptor.Descriptor) error {
	if model == nil {
		return nil
	}
	enc := json.NewEncoder(outW)
	enc.SetIndent("", "  ")
	return enc.Encode(model)
}

type fileSource struct{ path string }

func newFileSource(path string) (*fileSource, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("descriptor path %q: %w", path, err)
	}
	return &fileSource{path: path}, nil
}

func (s *fileSource) Location() string { return s.path }

func (s *fileSource) Open() (descriptor.ReadCloser, error) {
	return os.Open(s.path)
}

func (s *fileSource) GetRelatedSource(relativePath string) descriptor.Source {
	resolved := filepath.Join(filepath.Dir(s.path), relativePath)
	if info, err := os.Stat(resolved); err == nil && info.IsDir() {
		resolved = filepath.Join(resolved, "descriptor.hcl")
	}
	if _, err := os.Stat(resolved); err != nil {
		return nil
	}
	return &fileSource{path: resolved}
}
