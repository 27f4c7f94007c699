// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/devexhq/devex/internal/contract"
)

// NewMCPServer initializes and configures the DevEx MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config) *server.MCPServer {
	s := server.NewMCPServer(
		"DevEx Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
	}

	// --- 1. Tool: run_comparison ---
	s.AddTool(mcp.NewTool("run_comparison",
		mcp.WithDescription("Run the pre/post developer-experience comparison across all configured data sources and return the grouped metric report."),
		mcp.WithString("reference_date", mcp.Description("Split date between the pre and post periods, in YYYY-MM-DD form."), mcp.Required()),
		mcp.WithString("commits_csv", mcp.Description("Path to the commits CSV export.")),
		mcp.WithString("mrs_csv", mcp.Description("Path to the merge requests CSV export.")),
		mcp.WithString("pipelines_csv", mcp.Description("Path to the pipelines CSV export.")),
		mcp.WithString("jira_csv", mcp.Description("Path to the Jira issues CSV export.")),
		mcp.WithString("commit_churn_csv", mcp.Description("Path to the weekly commit churn rollup CSV.")),
		mcp.WithString("pr_churn_csv", mcp.Description("Path to the weekly PR churn rollup CSV.")),
		mcp.WithString("workforce_mode", mcp.Description("Contributor population to compare (full, common, both). Defaults to 'both'."), mcp.Enum("full", "common", "both")),
	), h.handleRunComparison)

	// --- 2. Tool: analyze_patterns ---
	s.AddTool(mcp.NewTool("analyze_patterns",
		mcp.WithDescription("Classify commit messages into work categories and compare per-category activity before and after the reference date."),
		mcp.WithString("commits_csv", mcp.Description("Path to the commits CSV export."), mcp.Required()),
		mcp.WithString("reference_date", mcp.Description("Split date between the pre and post periods, in YYYY-MM-DD form."), mcp.Required()),
	), h.handleAnalyzePatterns)

	return s
}

// StartMCPServer starts the DevEx MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config) error {
	s := NewMCPServer(baseCfg)
	return server.ServeStdio(s)
}
