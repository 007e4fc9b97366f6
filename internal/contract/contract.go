// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/huangsam/whatsmygrade/schema"
)

// GradeSolver defines the operations the outer surfaces (HTTP, MCP) need from the core.
// This allows the handlers to be tested without going through the parser.
type GradeSolver interface {
	// SolveContent parses grade file text and solves it.
	SolveContent(ctx context.Context, content string) (*schema.Course, schema.Result, error)

	// Evaluate computes the value of a single grade expression.
	Evaluate(ctx context.Context, expression string) (float64, error)
}
