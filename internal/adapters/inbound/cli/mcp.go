package cli

import (
	mcpadapter "github.com/lightfix/lightfix/internal/adapters/inbound/mcp"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the lightfix MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd())
	return cmd
}

func newMCPServeCmd() *cobra.Command {
	var workDir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start lightfix MCP server (stdio)",
		Long:  "Start the lightfix MCP server using stdio transport. This lets AI coding assistants query Lighthouse findings and fix plans for the project.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if workDir == "" {
				workDir = "."
			}
			s := mcpadapter.NewLightfixMCPServer(workDir)
			return server.ServeStdio(s)
		},
	}

	cmd.Flags().StringVar(&workDir, "path", "", "Working directory (defaults to current directory)")

	return cmd
}
