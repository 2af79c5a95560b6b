package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/covidstats/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

The server communicates over stdio using JSON-RPC and exposes the
datasets and locale formatting as tools:
  get_value_on, get_last_value, get_series, hospital_name,
  format_number, get_separator

Example configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "covidstats": {
        "command": "/path/to/covidstats",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	if err := requireServices(); err != nil {
		return err
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Stats:     svc.Stats,
		Hospitals: svc.Hospitals,
		Locale:    svc.Locale,
	})
	if err != nil {
		return err
	}

	return server.Run(cmd.Context())
}
