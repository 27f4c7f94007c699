package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/devexhq/devex/core"
	"github.com/devexhq/devex/internal/contract"
	"github.com/devexhq/devex/internal/loader"
	"github.com/devexhq/devex/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
}

func (h *toolHandler) handleRunComparison(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := *h.baseCfg
	if p := request.GetString("commits_csv", ""); p != "" {
		cfg.CommitsPath = p
	}
	if p := request.GetString("mrs_csv", ""); p != "" {
		cfg.MergeRequestsPath = p
	}
	if p := request.GetString("pipelines_csv", ""); p != "" {
		cfg.PipelinesPath = p
	}
	if p := request.GetString("jira_csv", ""); p != "" {
		cfg.IssuesPath = p
	}
	if p := request.GetString("commit_churn_csv", ""); p != "" {
		cfg.CommitChurnPath = p
	}
	if p := request.GetString("pr_churn_csv", ""); p != "" {
		cfg.MergeRequestChurnPath = p
	}
	if m := request.GetString("workforce_mode", ""); m != "" {
		cfg.Mode = schema.WorkforceMode(m)
		if _, ok := schema.ValidWorkforceModes[cfg.Mode]; !ok {
			return mcp.NewToolResultError(fmt.Sprintf("invalid workforce mode '%s'. must be full, common, both", m)), nil
		}
	}
	if cfg.Mode == "" {
		cfg.Mode = schema.BothWorkforce
	}
	if cfg.Sentinel == "" {
		cfg.Sentinel = schema.UnmappedIdentity
	}

	refDate, err := parseReferenceDate(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	cfg.ReferenceDate = refDate

	if !cfg.HasAnyInput() {
		return mcp.NewToolResultError("at least one data source CSV is required"), nil
	}

	dataset, err := loader.LoadDataset(&cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("loading data failed: %v", err)), nil
	}

	report := core.Run(dataset, core.Options{
		ReferenceDate: cfg.ReferenceDate,
		Mode:          cfg.Mode,
		Sentinel:      cfg.Sentinel,
	})

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleAnalyzePatterns(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	commitsPath := request.GetString("commits_csv", "")
	if commitsPath == "" {
		return mcp.NewToolResultError("commits_csv is required"), nil
	}

	refDate, err := parseReferenceDate(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	commits, dropped, err := loader.LoadCommits(commitsPath)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("loading commits failed: %v", err)), nil
	}
	if len(commits) == 0 {
		return mcp.NewToolResultError(fmt.Sprintf("no usable commit records in %s (%d dropped)", commitsPath, dropped)), nil
	}

	sentinel := h.baseCfg.Sentinel
	if sentinel == "" {
		sentinel = schema.UnmappedIdentity
	}

	result := core.AnalyzePatterns(commits, core.Options{
		ReferenceDate: refDate,
		Mode:          schema.BothWorkforce,
		Sentinel:      sentinel,
	})

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func parseReferenceDate(request mcp.CallToolRequest) (time.Time, error) {
	raw := request.GetString("reference_date", "")
	if raw == "" {
		return time.Time{}, fmt.Errorf("reference_date is required")
	}
	refDate, err := time.ParseInLocation(contract.DateFormat, raw, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid reference_date '%s': expected YYYY-MM-DD", raw)
	}
	return refDate, nil
}
