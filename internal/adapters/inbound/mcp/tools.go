package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/lightfix/lightfix/internal/adapters/outbound/config"
	"github.com/lightfix/lightfix/internal/adapters/outbound/gitinfo"
	"github.com/lightfix/lightfix/internal/adapters/outbound/history"
	"github.com/lightfix/lightfix/internal/adapters/outbound/loader"
	"github.com/lightfix/lightfix/internal/adapters/outbound/markdown"
	"github.com/lightfix/lightfix/internal/application"
	"github.com/lightfix/lightfix/internal/domain"
)

// registerTools registers all lightfix MCP tools on the given server.
func registerTools(s *server.MCPServer, workDir string) {
	s.AddTool(
		mcplib.NewTool("lightfix_analyze",
			mcplib.WithDescription("Analyze a Lighthouse report: category scores, Core Web Vitals, opportunities, diagnostics, and failed audits as JSON"),
			mcplib.WithString("report", mcplib.Description("Report path; omit to use the latest report")),
			mcplib.WithString("category", mcplib.Description("Limit failed audits to one category")),
		),
		handleAnalyze(workDir),
	)

	s.AddTool(
		mcplib.NewTool("lightfix_fixes",
			mcplib.WithDescription("Generate the prioritized fix plan for a Lighthouse report"),
			mcplib.WithString("report", mcplib.Description("Report path; omit to use the latest report")),
			mcplib.WithString("category", mcplib.Description("Generate fixes for one category only")),
			mcplib.WithString("format", mcplib.Description("Output format: md or json (default: json)")),
		),
		handleFixes(workDir),
	)

	s.AddTool(
		mcplib.NewTool("lightfix_vitals",
			mcplib.WithDescription("Return the Core Web Vitals readings from the latest (or given) Lighthouse report"),
			mcplib.WithString("report", mcplib.Description("Report path; omit to use the latest report")),
		),
		handleVitals(workDir),
	)

	s.AddTool(
		mcplib.NewTool("lightfix_opportunities",
			mcplib.WithDescription("Return savings opportunities ranked by wasted time"),
			mcplib.WithString("report", mcplib.Description("Report path; omit to use the latest report")),
		),
		handleOpportunities(workDir),
	)
}

// newServices creates the standard loader plus both services for one
// request. Nothing is cached across requests.
func newServices(workDir string) (*application.AnalyzeService, *application.FixService, error) {
	cfg, err := config.New().Load(workDir)
	if err != nil {
		return nil, nil, err
	}
	ld := loader.New(cfg.ReportsDir)
	return application.NewAnalyzeService(ld, ld),
		application.NewFixService(ld, ld, gitinfo.New(), history.New(), cfg),
		nil
}

func handleAnalyze(workDir string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		analyzeSvc, _, err := newServices(workDir)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		args := request.GetArguments()
		report, _ := args["report"].(string)
		category, _ := args["category"].(string)

		result, err := analyzeSvc.Analyze(report, category, domain.DefaultMinScore)
		if err != nil {
			return errorResult(fmt.Sprintf("analyze failed: %v", err)), nil
		}
		return jsonResult(result)
	}
}

func handleFixes(workDir string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		_, fixSvc, err := newServices(workDir)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		args := request.GetArguments()
		report, _ := args["report"].(string)
		category, _ := args["category"].(string)

		result, err := fixSvc.PlanFixes(report, category)
		if err != nil {
			return errorResult(fmt.Sprintf("fixes failed: %v", err)), nil
		}

		if format, _ := args["format"].(string); format == "md" {
			return textResult(markdown.RenderFixes(result.Summary, result.Fixes)), nil
		}
		return jsonResult(result)
	}
}

func handleVitals(workDir string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		analyzeSvc, _, err := newServices(workDir)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		report, _ := request.GetArguments()["report"].(string)
		result, err := analyzeSvc.Analyze(report, "", domain.DefaultMinScore)
		if err != nil {
			return errorResult(fmt.Sprintf("analyze failed: %v", err)), nil
		}
		return jsonResult(result.Findings.Vitals)
	}
}

func handleOpportunities(workDir string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		analyzeSvc, _, err := newServices(workDir)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		report, _ := request.GetArguments()["report"].(string)
		result, err := analyzeSvc.Analyze(report, "", domain.DefaultMinScore)
		if err != nil {
			return errorResult(fmt.Sprintf("analyze failed: %v", err)), nil
		}
		return jsonResult(result.Findings.Opportunities)
	}
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// textResult returns a plain text content result.
func textResult(text string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(text)},
	}
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
