// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/whatsmygrade/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the whatsmygrade MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, solver contract.GradeSolver) *server.MCPServer {
	s := server.NewMCPServer(
		"whatsmygrade",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		solver:  solver,
	}

	// --- 1. Tool: solve_grades ---
	s.AddTool(mcp.NewTool("solve_grades",
		mcp.WithDescription("Solve a grade file and report the minimum uniform score needed in the ungraded categories to pass."),
		mcp.WithString("content", mcp.Description("Full text of the grade file with [breakdown], [grades] and optional [config] sections."), mcp.Required()),
		mcp.WithString("format", mcp.Description("Output format (json, text). Defaults to 'json'."), mcp.Enum("json", "text")),
		mcp.WithNumber("precision", mcp.Description("Decimal places for percentages in text output (1-4). Defaults to the server setting.")),
	), h.handleSolveGrades)

	// --- 2. Tool: evaluate_expression ---
	s.AddTool(mcp.NewTool("evaluate_expression",
		mcp.WithDescription("Evaluate a single grade expression such as '17/20', '86.2%' or 'grade_multiple([4, 5], 5)'."),
		mcp.WithString("expression", mcp.Description("The grade expression to evaluate."), mcp.Required()),
	), h.handleEvaluateExpression)

	return s
}

// StartMCPServer starts the whatsmygrade MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, solver contract.GradeSolver) error {
	s := NewMCPServer(baseCfg, solver)
	return server.ServeStdio(s)
}
