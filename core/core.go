// Package core has core logic for reading grade files and solving for the passing minimum.
package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/huangsam/whatsmygrade/core/expr"
	"github.com/huangsam/whatsmygrade/core/gradefile"
	"github.com/huangsam/whatsmygrade/internal/contract"
	"github.com/huangsam/whatsmygrade/internal/outwriter"
	"github.com/huangsam/whatsmygrade/schema"
)

// ErrFileNotFound is returned by AnalyzeFile when the input path does not exist.
var ErrFileNotFound = errors.New("cannot find file")

// ExecuteGradeReport reads the configured grade file, solves it and prints the report.
// It serves as the main entry point for the root command.
func ExecuteGradeReport(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	logger := contract.NewLogger(os.Stderr, cfg.Debug)
	course, result, err := AnalyzeFile(ctx, cfg.InputPath, logger)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	logger.Debug("solved grade file", "path", cfg.InputPath, "outcome", result.Outcome, "duration", duration)
	return outwriter.PrintGradeReport(course, result, cfg, duration)
}

// AnalyzeFile reads a grade file from disk and runs AnalyzeContent on it.
func AnalyzeFile(ctx context.Context, path string, logger *slog.Logger) (*schema.Course, schema.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, schema.Result{}, err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, schema.Result{}, fmt.Errorf("%w with path %q", ErrFileNotFound, path)
		}
		return nil, schema.Result{}, fmt.Errorf("cannot read %q: %w", path, err)
	}
	if logger == nil {
		logger = discardLogger()
	}
	logger.Debug("read grade file", "path", path, "bytes", len(content))
	return AnalyzeContent(ctx, string(content), logger)
}

// AnalyzeContent parses grade file text and solves the resulting course.
func AnalyzeContent(ctx context.Context, content string, logger *slog.Logger) (*schema.Course, schema.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, schema.Result{}, err
	}
	if logger == nil {
		logger = discardLogger()
	}

	course, err := gradefile.Parse(content, gradefile.WithLogger(logger))
	if err != nil {
		return nil, schema.Result{}, err
	}

	result := Solve(course)
	logger.Debug("solver finished",
		"outcome", result.Outcome,
		"known_sum", result.KnownSum,
		"unknown_weight", result.UnknownWeight,
		"minimum", result.Minimum,
	)
	return course, result, nil
}

// Service implements contract.GradeSolver on top of the pipeline.
type Service struct {
	logger *slog.Logger
}

var _ contract.GradeSolver = &Service{} // Compile-time check

// NewService creates a Service that traces to logger. A nil logger discards.
func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = discardLogger()
	}
	return &Service{logger: logger}
}

// SolveContent implements the GradeSolver interface.
func (s *Service) SolveContent(ctx context.Context, content string) (*schema.Course, schema.Result, error) {
	return AnalyzeContent(ctx, content, s.logger)
}

// Evaluate implements the GradeSolver interface.
func (s *Service) Evaluate(ctx context.Context, expression string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	v, err := expr.Eval(strings.TrimSpace(expression))
	if err != nil {
		return 0, err
	}
	s.logger.Debug("evaluated expression", "expression", expression, "value", v)
	return v, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
