package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/lightfix/lightfix/internal/domain"
)

// registerResources registers all lightfix MCP resources on the given server.
func registerResources(s *server.MCPServer, workDir string) {
	// 1. lightfix://summary - latest report summary
	s.AddResource(
		mcplib.NewResource(
			"lightfix://summary",
			"Report Summary",
			mcplib.WithResourceDescription("Category scores and page metadata from the latest Lighthouse report"),
			mcplib.WithMIMEType("application/json"),
		),
		handleSummaryResource(workDir),
	)

	// 2. lightfix://fixes - fix plan for the latest report
	s.AddResource(
		mcplib.NewResource(
			"lightfix://fixes",
			"Fix Plan",
			mcplib.WithResourceDescription("Prioritized fix plan derived from the latest Lighthouse report"),
			mcplib.WithMIMEType("application/json"),
		),
		handleFixesResource(workDir),
	)
}

func handleSummaryResource(workDir string) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		analyzeSvc, _, err := newServices(workDir)
		if err != nil {
			return nil, err
		}

		result, err := analyzeSvc.Analyze("", "", domain.DefaultMinScore)
		if err != nil {
			return nil, fmt.Errorf("analyze failed: %w", err)
		}

		data, err := json.MarshalIndent(result.Findings.Summary, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling summary: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      "lightfix://summary",
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}

func handleFixesResource(workDir string) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		_, fixSvc, err := newServices(workDir)
		if err != nil {
			return nil, err
		}

		result, err := fixSvc.PlanFixes("", "")
		if err != nil {
			return nil, fmt.Errorf("fixes failed: %w", err)
		}

		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling fixes: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      "lightfix://fixes",
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}
