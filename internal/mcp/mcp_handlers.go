package mcp

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/huangsam/whatsmygrade/core/gradefile"
	"github.com/huangsam/whatsmygrade/internal/contract"
	"github.com/huangsam/whatsmygrade/internal/outwriter"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	solver  contract.GradeSolver
}

func (h *toolHandler) handleSolveGrades(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content := request.GetString("content", "")
	if strings.TrimSpace(content) == "" {
		return mcp.NewToolResultError("content is required"), nil
	}
	format := strings.ToLower(request.GetString("format", "json"))
	if format != "json" && format != "text" {
		return mcp.NewToolResultError(fmt.Sprintf("invalid format '%s'. must be json or text", format)), nil
	}
	cfg := h.baseCfg.Clone()
	if p := request.GetInt("precision", 0); p != 0 {
		if p < contract.MinPrecision || p > contract.MaxPrecision {
			return mcp.NewToolResultError(fmt.Sprintf("precision must be between %d and %d (received %d)", contract.MinPrecision, contract.MaxPrecision, p)), nil
		}
		cfg.Precision = p
	}

	course, result, err := h.solver.SolveContent(ctx, content)
	if err != nil {
		return mcp.NewToolResultError(describeError("solve failed", err)), nil
	}

	var buf bytes.Buffer
	if format == "text" {
		err = outwriter.RenderText(&buf, result, cfg.Precision)
	} else {
		err = outwriter.WriteJSONReport(&buf, course, result)
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("rendering failed: %v", err)), nil
	}
	return mcp.NewToolResultText(buf.String()), nil
}

func (h *toolHandler) handleEvaluateExpression(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	expression := request.GetString("expression", "")
	if strings.TrimSpace(expression) == "" {
		return mcp.NewToolResultError("expression is required"), nil
	}

	v, err := h.solver.Evaluate(ctx, expression)
	if err != nil {
		return mcp.NewToolResultError(describeError("evaluation failed", err)), nil
	}
	return mcp.NewToolResultText(strconv.FormatFloat(v, 'f', -1, 64)), nil
}

// describeError prefixes err and points at the grade file line when one is known.
func describeError(prefix string, err error) string {
	if line := gradefile.LineOf(err); line > 0 {
		return fmt.Sprintf("%s at line %d: %v", prefix, line, err)
	}
	return fmt.Sprintf("%s: %v", prefix, err)
}
