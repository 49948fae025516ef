package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewLightfixMCPServer creates an MCP server with all lightfix tools
// and resources registered. workDir is the directory whose
// .lighthouse/reports are served.
func NewLightfixMCPServer(workDir string) *server.MCPServer {
	s := server.NewMCPServer(
		"lightfix",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, workDir)
	registerResources(s, workDir)

	return s
}
